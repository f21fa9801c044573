package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// shells lists the completion targets, used to complete the completion command.
var shells = []string{string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell)}

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagFile // file with extension filter
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long  string   // --output
	Short string   // -o (empty if none)
	Type  flagType // completion type
	Desc  string   // help text
	Exts  []string // for file flags, without dots
}

// commandDef describes a command for completion.
type commandDef struct {
	Name   string
	Desc   string
	Flags  []flagDef
	Values []string // positional words, when fixed
	Dirs   bool     // positional argument is a directory
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Exts  []string // file extensions
	IsDir bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"config":    {Exts: []string{"yaml", "yml"}},
	"output":    {IsDir: true},
	"templates": {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Exts) > 0:
				fd.Type = flagFile
				fd.Exts = meta.Exts
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets - single source of truth.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:  "build",
			Desc:  "Build the site",
			Flags: extractFlagsFromFlagSet(newBuildFlagSet(&buildFlags{})),
			Dirs:  true,
		},
		{
			Name:  "check",
			Desc:  "Lint content without writing pages",
			Flags: extractFlagsFromFlagSet(newCheckFlagSet(&checkFlags{})),
			Dirs:  true,
		},
		{
			Name:  "config",
			Desc:  "Print the effective configuration",
			Flags: extractFlagsFromFlagSet(newConfigFlagSet(&configFlags{})),
		},
		{
			Name:   "completion",
			Desc:   "Generate shell completion script",
			Values: shells,
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name:   "help",
			Desc:   "Show help for a command",
			Values: commands,
		},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = bashScript(getCommands())
	case ShellZsh:
		script = zshScript(getCommands())
	case ShellFish:
		script = fishScript(getCommands())
	case ShellPowerShell:
		script = powerShellScript(getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedShell, shell, strings.Join(shells, ", "))
	}
	_, err := io.WriteString(w, script)
	return err
}

// flagWords lists every spelling of the flags: --long and -s.
func flagWords(flags []flagDef) []string {
	words := make([]string, 0, len(flags)*2)
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return words
}

func bashScript(cmds []commandDef) string {
	var sb strings.Builder
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}

	sb.WriteString("# bash completion for abyss\n")
	sb.WriteString("_abyss() {\n")
	sb.WriteString("    local cur prev cmd\n")
	sb.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	sb.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	sb.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	sb.WriteString("    if [[ $COMP_CWORD -eq 1 ]]; then\n")
	fmt.Fprintf(&sb, "        COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(names, " "))
	sb.WriteString("        return\n")
	sb.WriteString("    fi\n\n")

	// Flag values: one case arm per directory or file flag spelling.
	sb.WriteString("    case \"$prev\" in\n")
	seen := map[string]bool{}
	for _, c := range cmds {
		for _, f := range c.Flags {
			if seen[f.Long] || (f.Type != flagDir && f.Type != flagFile) {
				continue
			}
			seen[f.Long] = true
			pattern := "--" + f.Long
			if f.Short != "" {
				pattern += "|-" + f.Short
			}
			if f.Type == flagDir {
				fmt.Fprintf(&sb, "        %s) COMPREPLY=($(compgen -d -- \"$cur\")); return ;;\n", pattern)
			} else {
				fmt.Fprintf(&sb, "        %s) COMPREPLY=($(compgen -f -- \"$cur\" | grep -E '\\.(%s)$')); return ;;\n",
					pattern, strings.Join(f.Exts, "|"))
			}
		}
	}
	sb.WriteString("    esac\n\n")

	sb.WriteString("    case \"$cmd\" in\n")
	for _, c := range cmds {
		words := append(flagWords(c.Flags), c.Values...)
		if len(words) == 0 && !c.Dirs {
			continue
		}
		fmt.Fprintf(&sb, "        %s)\n", c.Name)
		if c.Dirs {
			sb.WriteString("            if [[ \"$cur\" != -* ]]; then\n")
			sb.WriteString("                COMPREPLY=($(compgen -d -- \"$cur\"))\n")
			sb.WriteString("                return\n")
			sb.WriteString("            fi\n")
		}
		fmt.Fprintf(&sb, "            COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(words, " "))
		sb.WriteString("            ;;\n")
	}
	sb.WriteString("    esac\n")
	sb.WriteString("}\n")
	sb.WriteString("complete -F _abyss abyss\n")
	return sb.String()
}

// zshQuote escapes text for a single-quoted _arguments spec.
var zshQuote = strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`)

func zshScript(cmds []commandDef) string {
	var sb strings.Builder

	sb.WriteString("#compdef abyss\n\n")
	sb.WriteString("_abyss() {\n")
	sb.WriteString("    local -a commands\n")
	sb.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&sb, "        '%s:%s'\n", c.Name, zshQuote.Replace(c.Desc))
	}
	sb.WriteString("    )\n\n")
	sb.WriteString("    if (( CURRENT == 2 )); then\n")
	sb.WriteString("        _describe 'command' commands\n")
	sb.WriteString("        return\n")
	sb.WriteString("    fi\n\n")
	sb.WriteString("    case \"$words[2]\" in\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 && len(c.Values) == 0 && !c.Dirs {
			continue
		}
		fmt.Fprintf(&sb, "        %s)\n", c.Name)
		sb.WriteString("            _arguments")
		for _, f := range c.Flags {
			sb.WriteString(" \\\n                ")
			sb.WriteString(zshFlagSpec(f))
		}
		switch {
		case len(c.Values) > 0:
			fmt.Fprintf(&sb, " \\\n                '1:value:(%s)'", strings.Join(c.Values, " "))
		case c.Dirs:
			sb.WriteString(" \\\n                '1:directory:_files -/'")
		}
		sb.WriteString("\n            ;;\n")
	}

	sb.WriteString("    esac\n")
	sb.WriteString("}\n\n")
	sb.WriteString("_abyss \"$@\"\n")
	return sb.String()
}

func zshFlagSpec(f flagDef) string {
	var action string
	switch f.Type {
	case flagBool:
	case flagDir:
		action = ":directory:_files -/"
	case flagFile:
		action = fmt.Sprintf(":file:_files -g \"*.(%s)\"", strings.Join(f.Exts, "|"))
	case flagInt:
		action = ":number:"
	default:
		action = ":value:"
	}

	desc := "[" + zshQuote.Replace(f.Desc) + "]"
	if f.Short == "" {
		return "'--" + f.Long + desc + action + "'"
	}
	return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
}

// fishQuote escapes text for a single-quoted fish string.
var fishQuote = strings.NewReplacer(`\`, `\\`, "'", `\'`)

func fishScript(cmds []commandDef) string {
	var sb strings.Builder

	sb.WriteString("# fish completion for abyss\n")
	sb.WriteString("complete -c abyss -f\n")
	for _, c := range cmds {
		fmt.Fprintf(&sb, "complete -c abyss -n '__fish_use_subcommand' -a %s -d '%s'\n", c.Name, fishQuote.Replace(c.Desc))
	}

	for _, c := range cmds {
		cond := fmt.Sprintf("-n '__fish_seen_subcommand_from %s'", c.Name)
		for _, f := range c.Flags {
			line := "complete -c abyss " + cond
			if f.Short != "" {
				line += " -s " + f.Short
			}
			line += " -l " + f.Long + " -d '" + fishQuote.Replace(f.Desc) + "'"
			switch f.Type {
			case flagBool:
			case flagDir:
				line += " -r -a '(__fish_complete_directories)'"
			case flagFile:
				line += " -r -F"
			default:
				line += " -r"
			}
			sb.WriteString(line + "\n")
		}
		if len(c.Values) > 0 {
			fmt.Fprintf(&sb, "complete -c abyss %s -a '%s'\n", cond, strings.Join(c.Values, " "))
		}
		if c.Dirs {
			fmt.Fprintf(&sb, "complete -c abyss %s -a '(__fish_complete_directories)'\n", cond)
		}
	}
	return sb.String()
}

func powerShellScript(cmds []commandDef) string {
	var sb strings.Builder

	sb.WriteString("# PowerShell completion for abyss\n")
	sb.WriteString("Register-ArgumentCompleter -Native -CommandName abyss -ScriptBlock {\n")
	sb.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	sb.WriteString("    $commands = @{\n")
	for _, c := range cmds {
		words := append(flagWords(c.Flags), c.Values...)
		quoted := make([]string, len(words))
		for i, w := range words {
			quoted[i] = "'" + w + "'"
		}
		fmt.Fprintf(&sb, "        '%s' = @(%s)\n", c.Name, strings.Join(quoted, ", "))
	}
	sb.WriteString("    }\n\n")
	sb.WriteString("    $elements = @($commandAst.CommandElements | Select-Object -Skip 1 | ForEach-Object { $_.ToString() })\n")
	sb.WriteString("    if ($elements.Count -eq 0 -or ($elements.Count -eq 1 -and $wordToComplete)) {\n")
	sb.WriteString("        $commands.Keys | Where-Object { $_ -like \"$wordToComplete*\" } | Sort-Object | ForEach-Object {\n")
	sb.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	sb.WriteString("        }\n")
	sb.WriteString("        return\n")
	sb.WriteString("    }\n\n")
	sb.WriteString("    $cmd = $elements[0]\n")
	sb.WriteString("    if ($commands.ContainsKey($cmd)) {\n")
	sb.WriteString("        $commands[$cmd] | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	sb.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $_)\n")
	sb.WriteString("        }\n")
	sb.WriteString("    }\n")
	sb.WriteString("}\n")
	return sb.String()
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: abyss completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(abyss completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Write to a directory in $fpath, then restart the shell:")
	fmt.Fprintln(w, "    abyss completion zsh > \"${fpath[1]}/_abyss\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    abyss completion fish > ~/.config/fish/completions/abyss.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    abyss completion powershell | Out-String | Invoke-Expression")
}
