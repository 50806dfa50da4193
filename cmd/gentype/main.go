/*
 * Gentype - A structural algebra over generic type descriptors
 *
 * Copyright Gentype Contributors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// gentype is an interactive shell for querying the type algebra.
//
// Usage:
//
//	gentype [catalog.yaml ...]
//
// Each argument is a YAML catalog document; its entities are registered
// on top of the built-in ones before the session starts.
package main

import (
	goerrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/gentype/gentype"
	"github.com/gentype/gentype/errors"
	"github.com/gentype/gentype/repl"
	"github.com/gentype/gentype/yamlcatalog"
)

func main() {
	cat := gentype.NewCatalog()

	for _, path := range os.Args[1:] {
		data, err := os.ReadFile(path)
		if err != nil {
			exitWithError(err)
		}
		if err := yamlcatalog.Populate(cat, data); err != nil {
			exitWithError(err)
		}
	}

	runREPL(repl.NewREPL(cat))
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, colorizeError(err.Error()))
	os.Exit(1)
}

func runREPL(r *repl.REPL) {
	printWelcome()

	executor := func(line string) {
		line = strings.TrimSpace(line)

		if strings.HasPrefix(line, ".") {
			handleCommand(r, line)
			return
		}

		result, err := r.Execute(line)
		if err != nil {
			printError(err)
			return
		}
		if result != "" {
			fmt.Println(colorizeResult(result))
		}
	}

	suggest := func(d prompt.Document) []prompt.Suggest {
		if len(d.GetWordBeforeCursor()) == 0 {
			return nil
		}

		suggests := []prompt.Suggest{}

		for _, suggestion := range r.Suggestions() {
			suggests = append(suggests, prompt.Suggest{
				Text:        suggestion.Text,
				Description: suggestion.Description,
			})
		}

		return prompt.FilterHasPrefix(suggests, d.GetWordBeforeCursor(), false)
	}

	options := []prompt.Option{
		prompt.OptionPrefix("> "),
	}
	prompt.New(executor, suggest, options...).Run()
}

const replAssistanceMessage = `Type '.help' for assistance.`

const replHelpMessage = `
Enter queries to evaluate them.
Commands are prefixed with a dot. Valid commands are:

.exit       Exit the session
.entities   List the defined entities
.help       Print this help message

Press ^C to abort the current query, ^D to exit`

func handleCommand(r *repl.REPL, command string) {
	switch command {
	case ".exit":
		os.Exit(0)
	case ".help":
		fmt.Println(replHelpMessage)
		fmt.Println(repl.HelpMessage)
	case ".entities":
		for _, name := range r.Catalog().EntityNames() {
			fmt.Println(name)
		}
	default:
		fmt.Println(colorizeError(fmt.Sprintf("Unknown command. %s", replAssistanceMessage)))
	}
}

func printError(err error) {
	fmt.Println(colorizeError(err.Error()))

	var secondaryError errors.SecondaryError
	if goerrors.As(err, &secondaryError) {
		fmt.Println(colorizeHint(secondaryError.SecondaryError()))
	}
}

func printWelcome() {
	fmt.Printf("Welcome to gentype!\n%s\n\n", replAssistanceMessage)
}
