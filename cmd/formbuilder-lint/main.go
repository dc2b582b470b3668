package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/editor"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint form schema files the JSON editor would accept but the builder cannot edit cleanly.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	os.Exit(run(paths, os.Stderr))
}

func run(paths []string, out io.Writer) int {
	var violations []violation
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(out, "lint %s: %v\n", path, err)
			return 1
		}
		linted, err := lintSchema(path, raw)
		if err != nil {
			fmt.Fprintf(out, "lint %s: %v\n", path, err)
			return 1
		}
		violations = append(violations, linted...)
	}

	if len(violations) == 0 {
		return 0
	}
	sort.SliceStable(violations, func(i, j int) bool {
		return violations[i].file < violations[j].file
	})
	for _, v := range violations {
		fmt.Fprintf(out, "%s: %s -> %s\n", v.file, v.location, v.message)
	}
	return 1
}

// lintSchema reports fields whose id or type the builder cannot address, and
// attributes the field's palette template does not declare.
var modelledAttrs = []string{model.AttrID, model.AttrType, model.AttrLabel, model.AttrPlaceholder}

func lintSchema(file string, raw []byte) ([]violation, error) {
	schema, err := editor.ParseSchema(raw)
	if err != nil {
		return nil, err
	}

	var out []violation
	seen := make(map[string]int, len(schema))
	for index, field := range schema {
		location := fmt.Sprintf("[%d]", index)
		for _, key := range modelledAttrs {
			if raw, ok := field.Extra[key]; ok {
				out = append(out, violation{file, location, fmt.Sprintf("%s must be a string, got %s", key, raw)})
			}
		}
		_, rawID := field.Extra[model.AttrID]
		_, rawType := field.Extra[model.AttrType]

		switch first, dup := seen[field.ID]; {
		case rawID:
		case strings.TrimSpace(field.ID) == "":
			out = append(out, violation{file, location, "missing id"})
		case dup:
			out = append(out, violation{file, location, fmt.Sprintf("duplicate id %q (first at [%d])", field.ID, first)})
		default:
			seen[field.ID] = index
		}

		if rawType {
			continue
		}
		tpl, ok := model.Lookup(string(field.Type))
		if !ok {
			out = append(out, violation{file, location, fmt.Sprintf("unknown type %q", field.Type)})
			continue
		}
		if field.HasPlaceholder() && !slices.Contains(tpl.Attributes, model.AttrPlaceholder) {
			out = append(out, violation{file, location, fmt.Sprintf("%s fields do not declare a placeholder", field.Type)})
		}
	}
	return out, nil
}
