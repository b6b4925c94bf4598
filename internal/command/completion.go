// Copyright © 2026 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"fmt"
	"io"
)

const bashCompletionScript = `# bash completion for unspack
_unspack()
{
    local cur prev
    COMPREPLY=()
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}

    case "$prev" in
        --digest|-d)
            COMPREPLY=( $(compgen -W "blake2b blake3 sha256" -- "$cur") )
            return 0
            ;;
        --completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        --tool|-t|--subcommand|--exclude|--bootstrap|-b|--sources|--sentinel|--prefix|--profile|--cache-ttl)
            return 0
            ;;
    esac

    if [[ $cur == -* ]]; then
        COMPREPLY=( $(compgen -W "--tool -t --subcommand --exclude --bootstrap -b --sources --sentinel --prefix --digest -d --profile --stats -s --cache --cache-ttl --examples --color -c --no-color --completion --help -h --version -v" -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -f -- "$cur") )
}
complete -o filenames -F _unspack unspack
`

const zshCompletionScript = `#compdef unspack

_unspack() {
  _arguments -C \
    '(-t --tool)'{-t,--tool}'[leading word of the commands to memoize]:tool' \
    '--subcommand[pattern for the memoizable subcommand]:pattern' \
    '--exclude[pattern for calls kept out of the cache]:pattern' \
    '(-b --bootstrap)'{-b,--bootstrap}'[pattern for the setup script path]:pattern' \
    '--sources[commands that dot-source a file]:commands' \
    '--sentinel[flag asking the tool for shell output]:flag' \
    '--prefix[prefix of generated function names]:prefix' \
    '(-d --digest)'{-d,--digest}'[fingerprint digest]:digest:(blake2b blake3 sha256)' \
    '--profile[config file section]:profile' \
    '(-s --stats)'{-s,--stats}'[print diagnostics]' \
    '(-c --color --no-color)'{-c,--color}'[colored diagnostics]' \
    '--no-color[plain diagnostics]' \
    '--cache[reuse the script generated for unchanged input]' \
    '--cache-ttl[hours before cached scripts are purged]:hours' \
    '--examples[print usage examples]' \
    '--completion[print completion script]:shell:(bash zsh)' \
    '1:script:_files'
}

if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _unspack unspack
`

// Completion writes the completion script for shell.
func Completion(w io.Writer, shell string) error {
	switch shell {
	case "bash":
		_, err := fmt.Fprint(w, bashCompletionScript)
		return err
	case "zsh":
		_, err := fmt.Fprint(w, zshCompletionScript)
		return err
	default:
		return fmt.Errorf("unsupported shell %q, must be bash or zsh", shell)
	}
}
