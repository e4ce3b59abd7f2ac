package main

import (
	"fmt"
	"strings"

	"github.com/anyform/go-anyform/form"
	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, an object path", cli.ErrUsage)
	}
	if args[0] == "" {
		return fmt.Errorf("%w: invalid query \"\"", cli.ErrUsage)
	}
	path := cleanPath(args[0])
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	var results []*form.Node
	for _, file := range files {
		docs, err := cfg.readArg(cc, file)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			res := doc.Lookup(path)
			if res == nil {
				continue
			}
			results = append(results, res)
		}
	}
	return cfg.writeDocs(cc.Out, results)
}

// cleanPath strips an optional "$" root marker so "$.a.b", ".a.b", and
// "a.b" all name the same path.
func cleanPath(p string) string {
	p = strings.TrimPrefix(p, "$")
	p = strings.TrimPrefix(p, ".")
	return p
}
