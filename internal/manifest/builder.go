// Package manifest turns resolved options and plugin scaffolds into a list
// of files and commits them to a brand-new directory.
//
// The full manifest is computed and checked before anything touches the
// filesystem. A duplicate relative path is a hard error, never a silent
// overwrite.
package manifest

import (
	"fmt"
	"path"

	"github.com/fastforge/fastforge/internal/wizard"
	"github.com/fastforge/fastforge/pkg/schema"
)

// GeneratedFile is one entry of the output manifest. It is never mutated
// after creation.
type GeneratedFile struct {
	RelativePath string
	Content      string
}

// Build computes the complete manifest for a project: the fixed base set
// plus one subtree per plugin scaffold. It fails when two entries share a
// relative path, naming the offending path.
func Build(project string, opts schema.ResolvedOptions, scaffolds []wizard.PluginScaffold) ([]GeneratedFile, error) {
	r := newRenderer()

	var files []GeneratedFile
	add := func(relPath, content string) {
		files = append(files, GeneratedFile{RelativePath: relPath, Content: content})
	}
	addRendered := func(relPath string, content string, err error) error {
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", relPath, err)
		}
		add(relPath, content)
		return nil
	}

	pkg, err := r.packageJSON(project, opts)
	if err := addRendered("package.json", pkg, err); err != nil {
		return nil, err
	}
	app, err := r.appJS(opts)
	if err := addRendered("app.js", app, err); err != nil {
		return nil, err
	}
	meta, err := r.projectYAML(project, opts)
	if err := addRendered("fastforge.yaml", meta, err); err != nil {
		return nil, err
	}
	readme, err := r.readme(project, opts)
	if err := addRendered("README.md", readme, err); err != nil {
		return nil, err
	}
	add(".gitignore", gitignoreContent)
	add(".editorconfig", editorconfigContent)
	add("plugins/README.md", pluginsReadmeContent)
	add("plugins/support.js", supportPluginContent)
	add("routes/README.md", routesReadmeContent)
	add("routes/root.js", rootRouteContent)
	add("test/helper.js", testHelperContent)
	add("test/plugins/support.test.js", supportTestContent)
	add("test/routes/root.test.js", rootTestContent)

	for _, sc := range scaffolds {
		root := path.Join("plugins", sc.Name)

		index, err := r.pluginIndex(sc)
		if err := addRendered(path.Join(root, "index.js"), index, err); err != nil {
			return nil, err
		}
		for _, route := range sc.Routes {
			content, err := r.routeFile(sc, route)
			if err := addRendered(path.Join(root, "routes", route, "index.js"), content, err); err != nil {
				return nil, err
			}
		}
		for _, hook := range sc.Hooks {
			content, err := r.hookFile(sc, hook)
			if err := addRendered(path.Join(root, "hooks", hook+".js"), content, err); err != nil {
				return nil, err
			}
		}
		if sc.HasDecorator {
			content, err := r.decoratorFile(sc)
			if err := addRendered(path.Join(root, "decorator.js"), content, err); err != nil {
				return nil, err
			}
		}
		if sc.ChildName != "" {
			content, err := r.childPluginFile(sc)
			if err := addRendered(path.Join(root, "plugins", sc.ChildName+".js"), content, err); err != nil {
				return nil, err
			}
		}
	}

	if err := checkCollisions(files); err != nil {
		return nil, err
	}
	return files, nil
}

// checkCollisions verifies that no two manifest entries share a relative
// path.
func checkCollisions(files []GeneratedFile) error {
	seen := make(map[string]struct{}, len(files))
	for _, file := range files {
		if _, dup := seen[file.RelativePath]; dup {
			return fmt.Errorf("manifest path collision: %q is generated twice", file.RelativePath)
		}
		seen[file.RelativePath] = struct{}{}
	}
	return nil
}
