// Package schemas embeds the JSON Schemas describing backend response envelopes.
package schemas

import (
	"embed"
	"fmt"
)

// Names of the embedded envelope schemas.
const (
	ApplicationList   = "application_list.schema.json"
	ApplicationSubmit = "application_submit.schema.json"
	JobList           = "job_list.schema.json"
	JobDetail         = "job_detail.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Load returns the content of an embedded schema.
func Load(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("unknown schema %s: %w", name, err)
	}
	return string(data), nil
}

// Names lists every embedded schema.
func Names() []string {
	return []string{ApplicationList, ApplicationSubmit, JobList, JobDetail}
}
