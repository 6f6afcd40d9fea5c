package inspect

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"stylebridge/config"
	"stylebridge/document"
	"stylebridge/state"
	"stylebridge/style"
)

// Resolve loads stylesheet document and outputs resolved styles.
func Resolve(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("resolve")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no stylesheet document has been specified")
	}
	docs, err := env.LoadDocuments(src)
	if docs == nil {
		return err
	}
	if err != nil {
		log.Warn("Documents have problems, continuing", zap.Int("problems", len(multierr.Errors(err))))
	}

	base, err := renderContext(env.Cfg.Styling.Context(), cmd)
	if err != nil {
		return err
	}
	names := cmd.Args().Slice()[1:]

	var data []byte
	if len(docs) == 1 {
		rc := base
		rc.Vars = docs[0].Vars
		results, err := ResolveStyles(env.Resolver, docs[0], rc, names)
		if err != nil {
			return err
		}
		if data, err = EncodeResults(results); err != nil {
			return err
		}
	} else {
		bundle, err := ResolveBundle(env.Resolver, docs, base, names)
		if err != nil {
			return err
		}
		if data, err = EncodeBundle(bundle); err != nil {
			return err
		}
	}
	env.Rpt.StoreData(fmt.Sprintf("resolved/%s.yaml", config.CleanEntryName(filepath.Base(src))), data)

	log.Debug("Styles resolved", zap.String("source", src), zap.Int("documents", len(docs)),
		zap.Stringer("scheme", base.ColorScheme), zap.Float64("width", base.ViewportWidth))
	return writeOutput(cmd.String("output"), data, log)
}

// ResolveStyles resolves named styles of the document, all styles when no
// names are given.
func ResolveStyles(r *style.Resolver, doc *document.Document, ctx style.Context, names []string) (map[string]style.Result, error) {
	if len(names) == 0 {
		names = doc.Sheet.Names()
	}
	results := make(map[string]style.Result, len(names))
	for _, name := range names {
		st, ok := doc.Sheet.Style(name)
		if !ok {
			return nil, fmt.Errorf("style %q is not defined in %s", name, doc.Name)
		}
		results[name] = r.Resolve(ctx, st)
	}
	return results, nil
}

// ResolveBundle resolves styles of every document using its own custom
// properties. Named styles are resolved in documents which define them,
// name defined by none of the documents is an error.
func ResolveBundle(r *style.Resolver, docs []*document.Document, ctx style.Context, names []string) (map[string]map[string]style.Result, error) {
	found := make(map[string]bool, len(names))
	out := make(map[string]map[string]style.Result, len(docs))
	for _, doc := range docs {
		own := names
		if len(names) > 0 {
			own = slices.DeleteFunc(slices.Clone(names), func(name string) bool {
				_, ok := doc.Sheet.Style(name)
				return !ok
			})
			if len(own) == 0 {
				continue
			}
		}
		rc := ctx
		rc.Vars = doc.Vars
		results, err := ResolveStyles(r, doc, rc, own)
		if err != nil {
			return nil, err
		}
		for name := range results {
			found[name] = true
		}
		out[doc.Name] = results
	}
	for _, name := range names {
		if !found[name] {
			return nil, fmt.Errorf("style %q is not defined in any document", name)
		}
	}
	return out, nil
}

// EncodeResults produces YAML document with resolved styles, empty
// sections are omitted.
func EncodeResults(results map[string]style.Result) ([]byte, error) {
	return marshal(resultsTree(results))
}

// EncodeBundle produces YAML document with resolved styles grouped by
// document name.
func EncodeBundle(bundle map[string]map[string]style.Result) ([]byte, error) {
	out := make(map[string]any, len(bundle))
	for name, results := range bundle {
		out[name] = resultsTree(results)
	}
	return marshal(out)
}

func resultsTree(results map[string]style.Result) map[string]any {
	out := make(map[string]any, len(results))
	for name, res := range results {
		entry := map[string]any{"style": res.Style}
		if len(res.Props) > 0 {
			entry["props"] = res.Props
		}
		if len(res.Animation) > 0 {
			entry["animation"] = res.Animation
		}
		out[name] = entry
	}
	return out
}
