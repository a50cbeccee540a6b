// Package cli implements the magpie command line on top of the library.
package cli

import (
	"encoding/json"
	"errors"
	"os"
	"time"
)

// jsonOutput is set by the --json persistent flag. In JSON mode every
// command writes exactly one Response envelope to stdout, success or
// failure, so scripts and agents never have to parse free text.
var jsonOutput bool

func isJSONOutput() bool {
	return jsonOutput
}

// Response is the envelope for machine output.
type Response struct {
	OK       bool        `json:"ok"`
	Data     interface{} `json:"data,omitempty"`
	Error    *ErrorInfo  `json:"error,omitempty"`
	Warnings []Warning   `json:"warnings,omitempty"`
	Meta     *Meta       `json:"meta,omitempty"`
}

// ErrorInfo carries a stable code from errors.go, the human-readable
// message, and an optional suggestion for the next command to try.
type ErrorInfo struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// Warning is a non-fatal problem attached to an otherwise successful
// response, e.g. one skipped file in a multi-file import. Ref names the
// input the warning is about.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Ref     string `json:"ref,omitempty"`
}

// Meta describes the result set: how many entries, and how long the store
// query took.
type Meta struct {
	Count       int   `json:"count,omitempty"`
	QueryTimeMs int64 `json:"query_time_ms,omitempty"`
}

// timedMeta builds result metadata for a query that started at start.
func timedMeta(count int, start time.Time) *Meta {
	return &Meta{Count: count, QueryTimeMs: time.Since(start).Milliseconds()}
}

func writeEnvelope(resp Response) {
	buf, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return
	}
	os.Stdout.Write(append(buf, '\n'))
}

func outputSuccess(data interface{}, meta *Meta) {
	writeEnvelope(Response{OK: true, Data: data, Meta: meta})
}

func outputSuccessWithWarnings(data interface{}, warnings []Warning, meta *Meta) {
	writeEnvelope(Response{OK: true, Data: data, Warnings: warnings, Meta: meta})
}

func outputError(code, message string, details interface{}, suggestion string) {
	info := &ErrorInfo{Code: code, Message: message, Details: details, Suggestion: suggestion}
	writeEnvelope(Response{Error: info})
}

// handleError reports a failure in the active output mode. In JSON mode it
// prints the error envelope and returns nil so Cobra does not print the
// error a second time; in text mode it hands the error back to Cobra.
func handleError(code string, err error, suggestion string) error {
	if !jsonOutput {
		return err
	}
	outputError(code, err.Error(), nil, suggestion)
	return nil
}

// handleErrorMsg is handleError for failures that carry only a message.
func handleErrorMsg(code, message, suggestion string) error {
	return handleErrorWithDetails(code, message, suggestion, nil)
}

// handleErrorWithDetails attaches structured details, e.g. the offending
// --where clauses, to the JSON error envelope.
func handleErrorWithDetails(code, message, suggestion string, details interface{}) error {
	if !jsonOutput {
		return errors.New(message)
	}
	outputError(code, message, details, suggestion)
	return nil
}
