package conformance

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/rezonia/tdd-builder/internal/codelist"
	"github.com/rezonia/tdd-builder/internal/model"
	"github.com/rezonia/tdd-builder/internal/ubl"
)

// serviceProviderICD is the identifier scheme of tax authority service providers
const serviceProviderICD = "0242"

type rule struct {
	id    string
	check func(t *tree, fail func(location, text string))
}

func defaultRules() []rule {
	return []rule{
		{id: "TDD-01", check: checkRoot},
		{id: "TDD-02", check: checkHeader},
		{id: "TDD-03", check: checkCodes},
		{id: "TDD-04", check: checkReceivingParty},
		{id: "TDD-05", check: checkRepresentative},
		{id: "TDD-06", check: checkTransactionCount},
		{id: "TDD-07", check: checkReportedDocument},
		{id: "TDD-08", check: checkTaxCurrency},
		{id: "TDD-09", check: checkCurrencyIDs},
		{id: "TDD-10", check: checkCustomContent},
		{id: "TDD-11", check: checkSourceDocument},
		{id: "TDD-12", check: checkDocumentCurrency},
	}
}

var headerPaths = [][]string{
	{"CustomizationID"},
	{"ProfileID"},
	{"UUID"},
	{"IssueDate"},
	{"IssueTime"},
	{"DocumentTypeCode"},
	{"DocumentScope"},
	{"ReporterRole"},
	{"TaxAuthority", "ID"},
	{"ReportingParty", "EndpointID"},
	{"ReceivingParty", "EndpointID"},
	{"ReportersRepresentative", "PartyIdentification", "ID"},
}

func checkRoot(t *tree, fail func(location, text string)) {
	if t.root.Tag != "TaxData" || ubl.NamespaceOf(t.root) != model.NamespaceTaxData {
		fail(location(t.root), fmt.Sprintf("root element must be TaxData in namespace %s", model.NamespaceTaxData))
	}
}

func checkHeader(t *tree, fail func(location, text string)) {
	for _, p := range headerPaths {
		name := strings.Join(p, "/")
		if text(find(t.root, p...)) == "" {
			fail(location(t.root)+"/"+name, name+" is mandatory")
		}
	}
}

func checkCodes(t *tree, fail func(location, text string)) {
	if e := child(t.root, "DocumentTypeCode"); e != nil && !t.typeCode.IsValid() {
		fail(location(e), fmt.Sprintf("DocumentTypeCode '%s' is not a valid code", text(e)))
	}
	if e := child(t.root, "DocumentScope"); e != nil && !codelist.DocumentScope(text(e)).IsValid() {
		fail(location(e), fmt.Sprintf("DocumentScope '%s' is not a valid code", text(e)))
	}
	if e := child(t.root, "ReporterRole"); e != nil && !codelist.ReporterRole(text(e)).IsValid() {
		fail(location(e), fmt.Sprintf("ReporterRole '%s' is not a valid code", text(e)))
	}
}

func checkReceivingParty(t *tree, fail func(location, text string)) {
	checkServiceProvider(find(t.root, "ReceivingParty", "EndpointID"), "ReceivingParty", fail)
}

func checkRepresentative(t *tree, fail func(location, text string)) {
	checkServiceProvider(find(t.root, "ReportersRepresentative", "PartyIdentification", "ID"), "ReportersRepresentative", fail)
}

// checkServiceProvider leaves missing elements to TDD-02
func checkServiceProvider(e *etree.Element, name string, fail func(location, text string)) {
	if e == nil {
		return
	}
	if scheme := e.SelectAttrValue("schemeID", ""); scheme != serviceProviderICD {
		fail(location(e), fmt.Sprintf("%s must use the %s identifier scheme, found '%s'", name, serviceProviderICD, scheme))
	}
}

func checkTransactionCount(t *tree, fail func(location, text string)) {
	if n := len(t.transactions); n != 1 {
		fail(location(t.root), fmt.Sprintf("exactly one ReportedTransaction is required, found %d", n))
	}
}

func checkReportedDocument(t *tree, fail func(location, text string)) {
	if t.typeCode.IsOmittable() {
		return
	}
	for _, rt := range t.transactions {
		if child(rt, "ReportedDocument") == nil {
			fail(location(rt), fmt.Sprintf("ReportedDocument is mandatory for DocumentTypeCode '%s'", t.typeCode))
		}
	}
}

func checkTaxCurrency(t *tree, fail func(location, text string)) {
	for _, rd := range t.reportedDocuments() {
		taxCurrency := text(child(rd, "TaxCurrencyCode"))
		totals := children(rd, "TaxTotal")
		if taxCurrency == "" {
			if len(totals) > 1 {
				fail(location(rd), "more than one TaxTotal requires a TaxCurrencyCode")
			}
			continue
		}
		found := false
		for _, total := range totals {
			if currencyOf(child(total, "TaxAmount")) == taxCurrency {
				found = true
			}
		}
		if !found {
			fail(location(rd), fmt.Sprintf("TaxCurrencyCode '%s' requires a TaxTotal in that currency", taxCurrency))
		}
	}
}

func checkCurrencyIDs(t *tree, fail func(location, text string)) {
	for _, rd := range t.reportedDocuments() {
		allowed := map[string]bool{text(child(rd, "DocumentCurrencyCode")): true}
		if c := text(child(rd, "TaxCurrencyCode")); c != "" {
			allowed[c] = true
		}
		walk(rd, func(e *etree.Element) {
			attr := e.SelectAttr("currencyID")
			if attr != nil && !allowed[attr.Value] {
				fail(location(e), fmt.Sprintf("currencyID '%s' is neither the document nor the tax currency", attr.Value))
			}
		})
	}
}

func checkCustomContent(t *tree, fail func(location, text string)) {
	for _, rt := range t.transactions {
		for _, cc := range children(rt, "CustomContent") {
			id := text(child(cc, "ID"))
			switch {
			case id == "":
				fail(location(cc), "CustomContent ID is mandatory")
			case id != strings.ToUpper(id):
				fail(location(cc), fmt.Sprintf("CustomContent ID '%s' must be all uppercase", id))
			}
			if text(child(cc, "Value")) == "" {
				fail(location(cc), "CustomContent Value is mandatory")
			}
		}
	}
}

func checkSourceDocument(t *tree, fail func(location, text string)) {
	for _, rt := range t.transactions {
		sd := child(rt, "SourceDocument")
		if sd == nil {
			fail(location(rt), "SourceDocument is mandatory")
			continue
		}
		var roots []*etree.Element
		if ec := child(sd, "ExtensionContent"); ec != nil {
			roots = ec.ChildElements()
		}
		if len(roots) != 1 || !ubl.IsSourceRoot(roots[0]) {
			fail(location(sd), "SourceDocument must contain exactly one UBL 2.1 Invoice or CreditNote")
		}
	}
}

func checkDocumentCurrency(t *tree, fail func(location, text string)) {
	top := child(t.root, "DocumentCurrencyCode")
	rds := t.reportedDocuments()
	if len(rds) == 0 {
		if top != nil {
			fail(location(top), "DocumentCurrencyCode must be absent when no ReportedDocument is present")
		}
		return
	}
	want := text(child(rds[0], "DocumentCurrencyCode"))
	if text(top) != want {
		fail(location(t.root)+"/DocumentCurrencyCode", fmt.Sprintf("DocumentCurrencyCode must equal the ReportedDocument currency '%s'", want))
	}
}

func currencyOf(e *etree.Element) string {
	if e == nil {
		return ""
	}
	return e.SelectAttrValue("currencyID", "")
}

func walk(e *etree.Element, fn func(*etree.Element)) {
	for _, c := range e.ChildElements() {
		fn(c)
		walk(c, fn)
	}
}

func trimText(s string) string {
	return strings.TrimSpace(s)
}
