package commands

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

//go:embed all:templates
var templateFS embed.FS

// copyTemplate copies an embedded template directory to targetDir.
// Existing files are kept unless force is set. "gitignore" is written as
// ".gitignore".
func copyTemplate(templateName, targetDir string, force bool) error {
	root := path.Join("templates", templateName)

	return fs.WalkDir(templateFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := renameSpecialFiles(p[len(root)+1:])
		target := filepath.Join(targetDir, filepath.FromSlash(rel))
		if !force {
			if _, err := os.Stat(target); err == nil {
				return nil
			}
		}

		content, err := templateFS.ReadFile(p)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
			return err
		}
		return os.WriteFile(target, content, 0o600)
	})
}

func renameSpecialFiles(rel string) string {
	if path.Base(rel) == "gitignore" {
		return path.Join(path.Dir(rel), ".gitignore")
	}
	return rel
}

// listTemplateFiles returns the files a template writes, for display.
func listTemplateFiles(templateName string) ([]string, error) {
	var files []string
	root := path.Join("templates", templateName)

	err := fs.WalkDir(templateFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, renameSpecialFiles(p[len(root)+1:]))
		}
		return nil
	})
	return files, err
}
