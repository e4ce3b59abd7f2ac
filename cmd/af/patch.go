package main

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"

	"github.com/anyform/go-anyform/form"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: patch requires 2 arguments, a patch object, and a file to which to apply it", cli.ErrUsage)
	}
	patchDoc, err := getPatch(cfg, cc, args[0])
	if err != nil {
		return err
	}
	docs, err := cfg.readArg(cc, args[1])
	if err != nil {
		return err
	}
	apply, err := mkApply(cfg, patchDoc)
	if err != nil {
		return err
	}
	results := make([]*form.Node, 0, len(docs))
	for _, doc := range docs {
		res, err := apply(doc)
		if err != nil {
			return fmt.Errorf("error patching %s: %w", args[1], err)
		}
		results = append(results, res)
	}
	return cfg.writeDocs(cc.Out, results)
}

// getPatch reads the patch, from the argument itself under -s and from a
// file otherwise. A patch is always a single document.
func getPatch(cfg *PatchConfig, cc *cli.Context, arg string) (*form.Node, error) {
	var (
		docs []*form.Node
		err  error
	)
	if cfg.String {
		docs, err = readDocs([]byte(arg), cfg.inputFormat(""))
	} else {
		docs, err = cfg.readArg(cc, arg)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	if len(docs) != 1 {
		return nil, fmt.Errorf("%w: patch expects one patch document, got %d", cli.ErrUsage, len(docs))
	}
	return docs[0], nil
}

// mkApply picks the patch flavor: a list is an RFC 6902 patch, a map is
// an RFC 7386 merge patch, and -m forces merge semantics for any type.
func mkApply(cfg *PatchConfig, patchDoc *form.Node) (func(*form.Node) (*form.Node, error), error) {
	patchJSON, err := patchDoc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	if cfg.Merge || patchDoc.Type == form.MapType {
		return func(doc *form.Node) (*form.Node, error) {
			docJSON, err := doc.MarshalJSON()
			if err != nil {
				return nil, err
			}
			res, err := jsonpatch.MergePatch(docJSON, patchJSON)
			if err != nil {
				return nil, err
			}
			out := &form.Node{}
			if err := json.Unmarshal(res, out); err != nil {
				return nil, err
			}
			return out, nil
		}, nil
	}
	if patchDoc.Type != form.ListType {
		return nil, fmt.Errorf("%w: a patch must be a JSON Patch list or a merge patch map, got %s", cli.ErrUsage, patchDoc.Type)
	}
	ops, err := jsonpatch.DecodePatch(patchJSON)
	if err != nil {
		return nil, fmt.Errorf("invalid patch: %w", err)
	}
	return func(doc *form.Node) (*form.Node, error) {
		docJSON, err := doc.MarshalJSON()
		if err != nil {
			return nil, err
		}
		res, err := ops.Apply(docJSON)
		if err != nil {
			return nil, err
		}
		out := &form.Node{}
		if err := json.Unmarshal(res, out); err != nil {
			return nil, err
		}
		return out, nil
	}, nil
}
