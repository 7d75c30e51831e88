// Package report turns command results into the lines and tables shown to
// the user. The terminal and text renderers share it and differ only in how
// they draw the parts.
package report

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/latte/pkg/commands"
	"github.com/arthur-debert/latte/pkg/errors"
	"github.com/arthur-debert/latte/pkg/types"
)

// Report is the user-facing rendition of a command result
type Report struct {
	Warnings []string
	Success  string
	Table    *Table
	Fields   []Field
}

// Table is a list of rows with a header
type Table struct {
	Headers []string
	Rows    [][]string
}

// Field is one key/value line
type Field struct {
	Key   string
	Value string
}

// FromResult builds the report of res
func FromResult(res *commands.Result) *Report {
	r := &Report{Warnings: res.Warnings}

	switch {
	case res.Install != nil:
		in := res.Install
		format := msgInstalled
		if in.Updated {
			format = msgUpdated
		}
		r.Success = fmt.Sprintf(format, in.Reference.Name, in.Reference.Nickname)
		if v := in.Package.Version(); v != "" {
			r.Success += fmt.Sprintf(msgVersionSuffix, v)
		}

	case res.Remove != nil:
		r.Success = fmt.Sprintf(msgRemoved, res.Remove.Name)

	case res.New != nil:
		r.Success = fmt.Sprintf(msgNewPackage, res.New.Name, res.New.Path)

	case res.Repo != nil:
		format := msgRepoAdded
		if res.Command == commands.CommandDelRepo {
			format = msgRepoRemoved
		}
		r.Success = fmt.Sprintf(format, res.Repo.Repository.Nickname)

	case res.Repos != nil:
		r.Table = &Table{Headers: []string{"NICKNAME", "URL"}}
		for _, repo := range res.Repos.Repositories {
			r.Table.Rows = append(r.Table.Rows, []string{repo.Nickname, repo.URL})
		}

	case res.Packages != nil:
		if len(res.Packages.Packages) == 0 {
			r.Success = msgNoPackages
			break
		}
		r.Table = &Table{Headers: []string{"NAME", "VERSION", "STATE", "DESCRIPTION"}}
		for _, pkg := range res.Packages.Packages {
			r.Table.Rows = append(r.Table.Rows, []string{
				pkg.Name, pkg.Version(), string(pkg.State), pkg.Metadata["description"],
			})
		}

	case res.Info != nil:
		r.Fields = infoFields(res.Info)
	}

	return r
}

func infoFields(pkg *types.InstalledPackage) []Field {
	fields := []Field{
		{Key: "name", Value: pkg.Name},
		{Key: "state", Value: string(pkg.State)},
		{Key: "metadata", Value: pkg.MetadataPath},
		{Key: "entry point", Value: pkg.BinPath},
	}

	known := []string{"version", "developer", "description"}
	for _, k := range known {
		if v, ok := pkg.Metadata[k]; ok {
			fields = append(fields, Field{Key: k, Value: v})
		}
	}

	var extra []string
	for k := range pkg.Metadata {
		if !contains(known, k) {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		fields = append(fields, Field{Key: k, Value: pkg.Metadata[k]})
	}
	return fields
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ErrorText returns the message shown for err, without the error code
func ErrorText(err error) string {
	var latteErr *errors.LatteError
	if !stderrors.As(err, &latteErr) {
		return err.Error()
	}

	msg := latteErr.Message
	if latteErr.Wrapped != nil {
		msg += ": " + ErrorText(latteErr.Wrapped)
	}
	if missing, ok := latteErr.Details["remaining"].([]string); ok && len(missing) > 0 {
		msg += " (remaining: " + strings.Join(missing, ", ") + ")"
	}
	return msg
}
