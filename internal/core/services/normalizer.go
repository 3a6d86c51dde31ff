package services

import (
	"bytes"
	"encoding/base64"
	"encoding/csv"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ingest-cli/internal/logger"
)

// Ensure Normalizer implements the interface.
var _ driving.Normalizer = (*Normalizer)(nil)

// base64Marker separates the data URL header from its payload.
const base64Marker = "base64,"

// defaultMIMEType is used for blobs without a declared type.
const defaultMIMEType = "application/octet-stream"

var rowSeparator = regexp.MustCompile(`\r?\n`)

// ReadFunc reads a blob as a data URL ("data:<mime>;base64,<payload>").
type ReadFunc func(blob domain.Blob) (string, error)

// Codec encodes and decodes the base64 layer.
type Codec interface {
	EncodeBase64(data []byte) string
	DecodeBase64(s string) ([]byte, error)
}

// StdCodec is the standard padded base64 alphabet.
type StdCodec struct{}

// EncodeBase64 encodes data with padding.
func (StdCodec) EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeBase64 decodes a padded base64 string.
func (StdCodec) DecodeBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}

// ReadDataURL renders a blob the way a browser FileReader does.
func ReadDataURL(blob domain.Blob) (string, error) {
	mimeType := blob.MIMEType
	if mimeType == "" {
		mimeType = defaultMIMEType
	}
	return "data:" + mimeType + ";" + base64Marker + base64.StdEncoding.EncodeToString(blob.Data), nil
}

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithReader replaces the blob reader.
func WithReader(read ReadFunc) NormalizerOption {
	return func(n *Normalizer) {
		n.read = read
	}
}

// WithCodec replaces the base64 codec.
func WithCodec(codec Codec) NormalizerOption {
	return func(n *Normalizer) {
		n.codec = codec
	}
}

// WithQuoteAwareHeader splits the header row using CSV quoting rules.
func WithQuoteAwareHeader(enabled bool) NormalizerOption {
	return func(n *Normalizer) {
		n.quoteAware = enabled
	}
}

// Normalizer rewrites the header row of an uploaded CSV and encodes the
// result for transport.
type Normalizer struct {
	read       ReadFunc
	codec      Codec
	quoteAware bool
}

// NewNormalizer creates a normalizer with the browser-compatible defaults.
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		read:  ReadDataURL,
		codec: StdCodec{},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize decodes the blob, strips whitespace from every header field,
// and returns the percent-encoded base64 of the rewritten text.
func (n *Normalizer) Normalize(blob domain.Blob, connector domain.Connector) (*domain.NormalizedPayload, error) {
	text, err := n.decode(blob)
	if err != nil {
		return nil, err
	}

	rows := rowSeparator.Split(text, -1)
	if rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", blob.Name, domain.ErrEmptyFile)
	}

	rows[0] = n.normalizeHeader(rows[0])
	normalized := strings.Join(rows, "\n")
	logger.Debug("normalised header of %s: %s (%d rows)", blob.Name, rows[0], len(rows))

	return &domain.NormalizedPayload{
		EncodedContent: EncodeURIComponent(n.codec.EncodeBase64([]byte(normalized))),
		SourceAPIName:  connector.SourceAPIName,
		ObjectAPIName:  connector.ObjectAPIName,
		Rows:           len(rows),
	}, nil
}

// decode reads the blob as a data URL and returns its UTF-8 text.
func (n *Normalizer) decode(blob domain.Blob) (string, error) {
	dataURL, err := n.read(blob)
	if err != nil {
		return "", fmt.Errorf("read %s: %w: %w", blob.Name, domain.ErrDecode, err)
	}

	idx := strings.Index(dataURL, base64Marker)
	if idx < 0 {
		return "", fmt.Errorf("read %s: missing %q marker: %w", blob.Name, base64Marker, domain.ErrDecode)
	}

	raw, err := n.codec.DecodeBase64(dataURL[idx+len(base64Marker):])
	if err != nil {
		return "", fmt.Errorf("decode %s: %w: %w", blob.Name, domain.ErrDecode, err)
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("decode %s: invalid UTF-8: %w", blob.Name, domain.ErrDecode)
	}
	return string(raw), nil
}

// normalizeHeader removes every whitespace character from each header field.
func (n *Normalizer) normalizeHeader(row string) string {
	if n.quoteAware {
		if header, ok := normalizeQuotedHeader(row); ok {
			return header
		}
		logger.Warn("header is not valid CSV, falling back to comma split")
	}

	fields := strings.Split(row, ",")
	for i := range fields {
		fields[i] = StripWhitespace(fields[i])
	}
	return strings.Join(fields, ",")
}

// normalizeQuotedHeader splits row with CSV quoting and re-quotes where needed.
func normalizeQuotedHeader(row string) (string, bool) {
	r := csv.NewReader(strings.NewReader(row))
	r.FieldsPerRecord = -1
	fields, err := r.Read()
	if err != nil {
		return "", false
	}
	for i := range fields {
		fields[i] = StripWhitespace(fields[i])
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(fields); err != nil {
		return "", false
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", false
	}
	return strings.TrimSuffix(buf.String(), "\n"), true
}

// StripWhitespace removes all whitespace characters, matching the
// ECMAScript \s class (which includes U+FEFF but not U+0085).
func StripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if isScriptSpace(r) {
			return -1
		}
		return r
	}, s)
}

func isScriptSpace(r rune) bool {
	switch r {
	case '\ufeff':
		return true
	case '\u0085':
		return false
	}
	return unicode.IsSpace(r)
}

// uriUnreserved lists the ASCII characters encodeURIComponent leaves as-is.
const uriUnreserved = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_.!~*'()"

// EncodeURIComponent percent-encodes s byte-wise with the ECMAScript
// encodeURIComponent character set.
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if strings.IndexByte(uriUnreserved, c) >= 0 {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}
