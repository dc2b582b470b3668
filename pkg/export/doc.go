// Package export turns a built form into artifacts other tools consume. The
// OpenAPI exporter describes the form's submission payload as a request body
// so backends can validate what the rendered form posts.
package export
