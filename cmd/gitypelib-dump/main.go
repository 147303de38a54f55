// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/thanhlev/gitypelib"
)

var (
	wantHeader    bool
	wantDirectory bool
	wantDeps      bool
)

func prettyPrint(v interface{}) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "\t"); err != nil {
		return string(raw)
	}
	return pretty.String()
}

func load(filename string) (*gitypelib.Typelib, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return gitypelib.New(data, gitypelib.Options{})
}

func dump(cmd *cobra.Command, args []string) {
	t, err := load(args[0])
	if err != nil {
		log.Fatalf("failed to load %s: %v", args[0], err)
	}

	if wantHeader {
		fmt.Println(prettyPrint(struct {
			Namespace string
			CPrefix   string
		}{t.GetNamespace(), t.GetCPrefix()}))
	}

	if wantDeps {
		fmt.Println(prettyPrint(t.Dependencies()))
	}

	if wantDirectory {
		type entry struct {
			Index    int
			BlobType string
			Local    bool
			Name     string
		}
		var out []entry
		for i := 1; ; i++ {
			e, ok := t.ByIndex(i)
			if !ok {
				break
			}
			out = append(out, entry{e.Index, e.BlobType.String(), e.Local, e.Name})
		}
		fmt.Println(prettyPrint(out))
	}

	if !wantHeader && !wantDeps && !wantDirectory {
		fmt.Printf("namespace=%s c_prefix=%s\n", t.GetNamespace(), t.GetCPrefix())
	}
}

func runValidate(cmd *cobra.Command, args []string) {
	t, err := load(args[0])
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := t.Validate(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Println("OK")
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "gitypelib-dump",
		Short: "A typelib file loader and structural validator",
		Long:  "Loads and structurally validates typelib container files",
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("gitypelib-dump 0.0.1")
		},
	}

	dumpCmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Dumps the namespace, dependency list, and directory of a typelib",
		Args:  cobra.ExactArgs(1),
		Run:   dump,
	}
	dumpCmd.Flags().BoolVarP(&wantHeader, "header", "", false, "Dump namespace/c-prefix")
	dumpCmd.Flags().BoolVarP(&wantDirectory, "directory", "", false, "Dump the directory")
	dumpCmd.Flags().BoolVarP(&wantDeps, "deps", "", false, "Dump the dependency list")

	validateCmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Runs full structural validation and prints OK or the error",
		Args:  cobra.ExactArgs(1),
		Run:   runValidate,
	}

	rootCmd.AddCommand(versionCmd, dumpCmd, validateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
