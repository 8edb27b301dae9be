package cmd

import (
	"fmt"
	"strings"

	"github.com/nibzard/gotodo/internal/config"
)

// completionCommand prints a completion script for the requested shell.
func completionCommand(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("completion: shell argument required (bash|zsh|fish|powershell)")
	}
	if len(args) > 1 {
		return fmt.Errorf("unexpected arguments: %v", args[1:])
	}

	switch strings.ToLower(args[0]) {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	case "powershell", "pwsh":
		fmt.Print(powershellCompletion)
	default:
		return fmt.Errorf("completion: unsupported shell %q (bash|zsh|fish|powershell)", args[0])
	}
	return nil
}

const bashCompletion = `# gotodo bash completion
# Install: source this file from ~/.bashrc, or drop it into
# /etc/bash_completion.d/gotodo

_gotodo() {
    local cur commands
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    commands="tui ls add init doctor tail completion version help"

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "${commands}" -- "${cur}") )
        return 0
    fi

    case "${COMP_WORDS[1]}" in
        completion)
            COMPREPLY=( $(compgen -W "bash zsh fish powershell" -- "${cur}") )
            ;;
        tui|ls|doctor)
            COMPREPLY=( $(compgen -f -- "${cur}") )
            ;;
    esac
    return 0
}

complete -F _gotodo gotodo
`

const zshCompletion = `#compdef gotodo
# gotodo zsh completion

_gotodo() {
    local -a commands
    commands=(
        'tui:Open the interactive task list'
        'ls:Print tasks'
        'add:Append a task and save'
        'init:Create todos.json, todos.schema.json, and gotodo.toml'
        'doctor:Check config, task file, schema, and log directory'
        'tail:Tail the latest debug trace'
        'completion:Print a shell completion script'
        'version:Show version information'
        'help:Show this help message'
    )

    if (( CURRENT == 2 )); then
        _describe -t commands 'gotodo command' commands
        return
    fi

    case "${words[2]}" in
        completion)
            _values 'shell' bash zsh fish powershell
            ;;
        tui|ls|doctor)
            _files
            ;;
    esac
}

_gotodo "$@"
`

const fishCompletion = `# gotodo fish completion

set -l commands tui ls add init doctor tail completion version help

complete -c gotodo -f
complete -c gotodo -n "not __fish_seen_subcommand_from $commands" -a tui -d 'Open the interactive task list'
complete -c gotodo -n "not __fish_seen_subcommand_from $commands" -a ls -d 'Print tasks'
complete -c gotodo -n "not __fish_seen_subcommand_from $commands" -a add -d 'Append a task and save'
complete -c gotodo -n "not __fish_seen_subcommand_from $commands" -a init -d 'Create todos.json, todos.schema.json, and gotodo.toml'
complete -c gotodo -n "not __fish_seen_subcommand_from $commands" -a doctor -d 'Check config, task file, schema, and log directory'
complete -c gotodo -n "not __fish_seen_subcommand_from $commands" -a tail -d 'Tail the latest debug trace'
complete -c gotodo -n "not __fish_seen_subcommand_from $commands" -a completion -d 'Print a shell completion script'
complete -c gotodo -n "not __fish_seen_subcommand_from $commands" -a version -d 'Show version information'
complete -c gotodo -n "not __fish_seen_subcommand_from $commands" -a help -d 'Show this help message'
complete -c gotodo -n "__fish_seen_subcommand_from completion" -a 'bash zsh fish powershell'
complete -c gotodo -n "__fish_seen_subcommand_from tui ls doctor" -F
`

const powershellCompletion = `# gotodo PowerShell completion

Register-ArgumentCompleter -Native -CommandName gotodo -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $commands = @('tui', 'ls', 'add', 'init', 'doctor', 'tail', 'completion', 'version', 'help')
    $shells = @('bash', 'zsh', 'fish', 'powershell')

    $tokens = $commandAst.CommandElements | ForEach-Object { $_.ToString() }
    if ($tokens.Count -ge 2 -and $tokens[1] -eq 'completion') {
        $shells | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
        return
    }

    $commands | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
    }
}
`
