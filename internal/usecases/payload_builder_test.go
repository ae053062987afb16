package usecases_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"
	"merchant-kita.onboarding/internal/domain/entities"
	"merchant-kita.onboarding/internal/usecases"
)

func TestBuildPayload_OmitsEmptyAndUnsetFields(t *testing.T) {
	draft := entities.EmptyDraft(testMerchant)
	draft.LegalBusinessName = "Acme Ltd"
	draft.TradingName = ""
	draft.StaffStrength = null.IntFrom(25)
	draft.Bankrupcy = null.BoolFrom(false)

	payload := usecases.BuildPayload(draft, usecases.PayloadOptions{Mode: usecases.PayloadFull})

	assert.Equal(t, "Acme Ltd", payload.Fields["legalBusinessName"])
	assert.Equal(t, "25", payload.Fields["staffStrength"])
	// A set-but-false bool is a real answer and must be sent.
	assert.Equal(t, "false", payload.Fields["bankrupcy"])

	_, present := payload.Fields["tradingName"]
	assert.False(t, present)
	_, present = payload.Fields["politics"]
	assert.False(t, present)
}

func TestBuildPayload_FilteredKeepsOnlyAllowedKeysPlusProgress(t *testing.T) {
	draft := entities.EmptyDraft(testMerchant)
	draft.LegalBusinessName = "Acme Ltd"
	draft.RCNumber = "RC123"
	draft.ContactEmail = "contact@acme.example"

	progress := 2
	payload := usecases.BuildPayload(draft, usecases.PayloadOptions{
		Mode:        usecases.PayloadFiltered,
		AllowedKeys: []string{"rcNumber"},
		Progress:    &progress,
	})

	assert.Equal(t, map[string]string{
		"rcNumber": "RC123",
		"progress": "2",
	}, payload.Fields)
}

func TestBuildPayload_MemorandumRemapAndDocumentDecode(t *testing.T) {
	pdf := []byte("%PDF-1.4 memorandum")
	draft := entities.EmptyDraft(testMerchant)
	draft.MemorandumAndArticles = "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(pdf)
	draft.UtilityBill = base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 bill"))

	payload := usecases.BuildPayload(draft, usecases.PayloadOptions{
		Mode:             usecases.PayloadFiltered,
		IncludeDocuments: true,
	})

	assert.Len(t, payload.Documents, 2)

	byField := map[string]entities.DocumentUpload{}
	for _, d := range payload.Documents {
		byField[d.Field] = d
	}

	// The memorandum document travels under a different wire name.
	memo, ok := byField["memorandum_of_association"]
	assert.True(t, ok)
	assert.Equal(t, "application/pdf", memo.MimeType)
	assert.Equal(t, pdf, memo.Data)
	_, old := byField["memorandum_and_articles"]
	assert.False(t, old)

	bill, ok := byField["utility_bill"]
	assert.True(t, ok)
	assert.NotEmpty(t, bill.Data)
}

func TestBuildPayload_SkipsUndecodableDocuments(t *testing.T) {
	draft := entities.EmptyDraft(testMerchant)
	draft.StatusReport = "!!! not base64 !!!"

	payload := usecases.BuildPayload(draft, usecases.PayloadOptions{
		Mode:             usecases.PayloadFiltered,
		IncludeDocuments: true,
	})
	assert.Empty(t, payload.Documents)
}

func TestBuildPayload_OwnersOverrideAndFieldFiltering(t *testing.T) {
	draft := entities.EmptyDraft(testMerchant)
	draft.Owners = []entities.Owner{{FirstName: "Ada", LastName: "Lovelace"}}

	override := []entities.Owner{
		{FirstName: "Grace", PercentOfBusiness: 40},
	}
	payload := usecases.BuildPayload(draft, usecases.PayloadOptions{
		Mode:           usecases.PayloadFiltered,
		IncludeOwners:  true,
		OwnersOverride: override,
	})

	assert.Len(t, payload.Owners, 1)
	assert.Equal(t, "Grace", payload.Owners[0]["firstName"])
	assert.Equal(t, "40", payload.Owners[0]["percentOfBusiness"])

	_, present := payload.Owners[0]["lastName"]
	assert.False(t, present)
}
