package hw

import (
	"errors"
	"os"
	"strings"
)

// ProbeResult is the outcome of checking one control or status file.
type ProbeResult struct {
	NamedPath
	Writable bool
	Value    string // current contents, when readable
	Err      error
}

// OK reports whether the file is usable for its role.
func (r ProbeResult) OK() bool {
	return r.Err == nil
}

// Probe checks that every control file opens for writing and every status
// file can be read. Nothing is written.
func Probe(paths Paths) []ProbeResult {
	paths = paths.WithDefaults()
	var results []ProbeResult

	for _, np := range paths.ControlFiles() {
		res := ProbeResult{NamedPath: np}
		f, err := os.OpenFile(np.Path, os.O_WRONLY, 0)
		if err != nil {
			res.Err = err
		} else {
			res.Writable = true
			f.Close()
		}
		if data, err := os.ReadFile(np.Path); err == nil {
			res.Value = strings.TrimSpace(string(data))
		}
		results = append(results, res)
	}

	for _, np := range paths.StatusFiles() {
		res := ProbeResult{NamedPath: np}
		data, err := os.ReadFile(np.Path)
		if err != nil {
			res.Err = err
		} else {
			res.Value = strings.TrimSpace(string(data))
		}
		results = append(results, res)
	}
	return results
}

// ProbeErr joins the failures of results, or returns nil.
func ProbeErr(results []ProbeResult) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, &WriteError{Op: "probe", Path: r.Path, Err: r.Err})
		}
	}
	return errors.Join(errs...)
}
