package main

import (
	"github.com/anyform/go-anyform/form"
	"github.com/scott-cotton/cli"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		cfg.Convert.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	var docs []*form.Node
	for _, arg := range args {
		ds, err := cfg.readArg(cc, arg)
		if err != nil {
			return err
		}
		docs = append(docs, ds...)
	}
	return cfg.writeDocs(cc.Out, docs)
}
