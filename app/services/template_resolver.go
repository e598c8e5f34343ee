package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/mburu1/ReceiptReprintApplication/app/logging"
	"github.com/mburu1/ReceiptReprintApplication/app/models"
)

// TemplateSource supplies the best matching template for a store: an exact
// store match preferred over the universal default (store 0), nil when
// neither exists.
type TemplateSource interface {
	TemplateForStore(ctx context.Context, storeID int) (*models.ReceiptTemplate, error)
}

// Token patterns recognized in a template string. All five must be present
// for the parsed header to be used; otherwise the constant default header
// wins in full.
var headerTokens = map[string]*regexp.Regexp{
	"CompanyName": regexp.MustCompile(`\{CompanyName:(.*?)\}`),
	"Address1":    regexp.MustCompile(`\{Address1:(.*?)\}`),
	"PinNumber":   regexp.MustCompile(`\{PinNumber:(.*?)\}`),
	"PhoneNumber": regexp.MustCompile(`\{PhoneNumber:(.*?)\}`),
	"Country":     regexp.MustCompile(`\{Country:(.*?)\}`),
}

// TemplateResolver selects a store's header template and extracts the
// company header from its token mini-language.
type TemplateResolver struct {
	source TemplateSource
	log    logging.Logger
}

// NewTemplateResolver creates a resolver over a template source.
func NewTemplateResolver(source TemplateSource, log logging.Logger) *TemplateResolver {
	return &TemplateResolver{source: source, log: log}
}

// ResolveHeader fetches the template for the effective store id and parses
// it. Resolution failures (no template, bad tokens) fall back to the
// constant default header; only a collaborator failure is returned as an
// error.
func (r *TemplateResolver) ResolveHeader(ctx context.Context, storeID int) (models.CompanyHeader, error) {
	tpl, err := r.source.TemplateForStore(ctx, storeID)
	if err != nil {
		return models.DefaultCompanyHeader(), err
	}
	if tpl == nil {
		r.log.Warning("No template for store; using default header", fmt.Sprintf("store=%d", storeID))
		return models.DefaultCompanyHeader(), nil
	}
	return r.ParseHeader(tpl.TemplateSale), nil
}

// ParseHeader extracts the five header fields from a token template. Any
// token missing, or the assembled header failing validation, yields the
// full default header, never a partially populated one.
func (r *TemplateResolver) ParseHeader(template string) models.CompanyHeader {
	if strings.TrimSpace(template) == "" {
		r.log.Warning("Template is empty; using default header")
		return models.DefaultCompanyHeader()
	}

	extract := func(name string) (string, bool) {
		match := headerTokens[name].FindStringSubmatch(template)
		if match == nil {
			return "", false
		}
		return strings.TrimSpace(match[1]), true
	}

	header := models.CompanyHeader{}
	fields := []struct {
		name string
		dst  *string
	}{
		{"CompanyName", &header.CompanyName},
		{"Address1", &header.Address1},
		{"PinNumber", &header.PinNumber},
		{"PhoneNumber", &header.PhoneNumber},
		{"Country", &header.Country},
	}
	for _, f := range fields {
		value, ok := extract(f.name)
		if !ok {
			r.log.Warning("Template missing token; using default header", f.name)
			return models.DefaultCompanyHeader()
		}
		*f.dst = value
	}

	if !header.IsValid() {
		r.log.Warning("Parsed header is invalid; using default")
		return models.DefaultCompanyHeader()
	}
	return header
}
