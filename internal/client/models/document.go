package models

import "fmt"

// DocumentKind names one of the PDFs the backend issues to a user.
type DocumentKind string

const (
	DocumentIdentity    DocumentKind = "identity"
	DocumentCertificate DocumentKind = "certificate"
	DocumentSigned      DocumentKind = "signed"
)

var documentEndpoints = map[DocumentKind]string{
	DocumentIdentity:    "get-identity-document",
	DocumentCertificate: "get-certificate",
	DocumentSigned:      "get-signed-document",
}

// ParseDocumentKind accepts the kind names used on the command line.
func ParseDocumentKind(s string) (DocumentKind, error) {
	k := DocumentKind(s)
	if _, ok := documentEndpoints[k]; !ok {
		return "", fmt.Errorf("unknown document %q (want identity, certificate or signed)", s)
	}
	return k, nil
}

// Endpoint is the path segment under /users serving this document.
func (k DocumentKind) Endpoint() string {
	return documentEndpoints[k]
}

func (k DocumentKind) FileName() string {
	return string(k) + ".pdf"
}
