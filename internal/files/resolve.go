package files

import (
	"os"
	"path/filepath"
)

// Resolution is the outcome of looking up an input file.
type Resolution struct {
	Found bool
	Path  string
	// SearchedPaths lists every candidate checked, in order.
	SearchedPaths []string
}

// Resolver locates input images named by a tool caller.
type Resolver struct {
	// WorkDir is the base for relative search directories.
	WorkDir string
	// HomeDir is the base for the user folders searched last. Empty skips them.
	HomeDir string
	// OutputDir is the output directory name, searched so that generated
	// images can be edited by name.
	OutputDir string
}

// NewResolver builds a resolver rooted at the process working directory
// and the user's home directory.
func NewResolver(outputDir string) *Resolver {
	wd, _ := os.Getwd()
	home, _ := os.UserHomeDir()
	return &Resolver{WorkDir: wd, HomeDir: home, OutputDir: outputDir}
}

// SearchDirs returns the directories a bare name is looked up in, in order.
func (r *Resolver) SearchDirs() []string {
	dirs := []string{
		r.WorkDir,
		filepath.Join(r.WorkDir, "images"),
		filepath.Join(r.WorkDir, "input"),
	}
	if r.OutputDir != "" {
		dirs = append(dirs, r.abs(r.OutputDir))
	}
	if r.HomeDir != "" {
		dirs = append(dirs,
			filepath.Join(r.HomeDir, "Downloads"),
			filepath.Join(r.HomeDir, "Desktop"),
			filepath.Join(r.HomeDir, "Pictures"),
		)
	}
	return dirs
}

// FindInputFile looks name up as given, then in each search directory.
func (r *Resolver) FindInputFile(name string) Resolution {
	var res Resolution
	if name == "" {
		return res
	}

	seen := make(map[string]bool)
	try := func(p string) bool {
		p = filepath.Clean(p)
		if seen[p] {
			return false
		}
		seen[p] = true
		res.SearchedPaths = append(res.SearchedPaths, p)
		if isFile(p) {
			res.Found = true
			res.Path = p
			return true
		}
		return false
	}

	if try(r.abs(name)) || filepath.IsAbs(name) {
		return res
	}
	for _, dir := range r.SearchDirs() {
		if try(filepath.Join(dir, name)) {
			return res
		}
	}
	return res
}

func (r *Resolver) abs(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(r.WorkDir, p)
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
