// Package assets provides the HTML page templates used to build the site.
// Templates can be loaded from embedded files or a custom directory.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (default templates)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the builder. It tries the custom
// FilesystemLoader first, falling back to EmbeddedLoader if the template is
// not found. This allows overriding a single page template, such as post,
// while keeping the defaults for the rest.
//
// # Directory Structure
//
// Templates live flat in one directory:
//
//	{basePath}/
//	├── base.html         # Page shell: {{title}} {{description}} {{cssPath}} {{body}}
//	├── post.html         # Post article: {{content}}
//	├── index.html        # Post list: {{postList}}
//	├── about.html        # About page: {{content}}
//	├── echo.html         # Echo article: {{content}}
//	└── echo-index.html   # Echo list: {{echoList}}
//
// # Security
//
// Template names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
