// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

// Package credentials locates the GitHub access token.
package credentials

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/similigh/taskclone/internal/core/tasks"
)

// LookupEnvFunc matches os.LookupEnv.
type LookupEnvFunc func(key string) (string, bool)

// Resolve returns the token from envVar if it is set and non-empty, otherwise
// the first line of tokenFile. It fails with tasks.ErrCredentialMissing when
// neither source yields a token.
func Resolve(lookupEnv LookupEnvFunc, envVar, tokenFile string) (string, error) {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	if token, ok := lookupEnv(envVar); ok {
		if token = strings.TrimSpace(token); token != "" {
			return token, nil
		}
	}

	if tokenFile == "" {
		return "", tasks.ErrCredentialMissing
	}

	token, err := readFirstLine(tokenFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", tasks.ErrCredentialMissing
		}
		return "", fmt.Errorf("%w (reading %s: %v)", tasks.ErrCredentialMissing, tokenFile, err)
	}
	if token == "" {
		return "", tasks.ErrCredentialMissing
	}

	return token, nil
}

func readFirstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()), nil
	}
	return "", scanner.Err()
}
