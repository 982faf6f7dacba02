package service

import "github.com/m-mizutani/goerr/v2"

var (
	ErrDocumentNotFound    = goerr.New("document not found")
	ErrDocumentTooLarge    = goerr.New("document exceeds the upload size limit")
	ErrDocumentEmpty       = goerr.New("document contains no readable text")
	ErrUnsupportedDocument = goerr.New("document format is not supported")
)
