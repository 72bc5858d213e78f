package main

import (
	"fmt"
)

const complete = `#! /bin/bash

_curiam_autocomplete() {
    local cur

    # Try to initialize using bash-completion if available
    if declare -F _init_completion >/dev/null 2>&1; then
        _init_completion -n "=:" 2>/dev/null
    fi

    # Fallback if cur is not set (e.g. _init_completion failed or missing)
    if [[ -z "$cur" ]]; then
        cur="${COMP_WORDS[COMP_CWORD]}"
    fi

    # call curiam complete with all words
    local suggestions=$(curiam complete -- "${COMP_WORDS[@]}")

    if [ $? -eq 0 ]; then
        COMPREPLY=( $(compgen -W "$suggestions" -- "$cur") )
    fi
}

complete -F _curiam_autocomplete curiam
`

func bashCommand(ui UI) error {
	_, err := fmt.Fprint(ui.Out, complete)
	return err
}
