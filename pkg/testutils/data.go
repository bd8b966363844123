package testutils

import (
	"encoding/base64"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/capydb/capydb-go/pkg/models"
)

// TestMatches mirrors the ranked match payload the query endpoint returns.
var TestMatches = []models.QueryMatch{
	{
		Chunk:    "Iceland is best visited between June and August.",
		Path:     "profile.bio",
		Score:    0.93,
		Document: models.DocumentRef{ID: "doc-1"},
	},
	{
		Chunk:    "The midnight sun makes long hikes possible.",
		Path:     "profile.bio",
		Score:    0.87,
		Document: models.DocumentRef{ID: "doc-2"},
	},
	{
		Chunk:    "Pack for wind and rain in every season.",
		Path:     "notes.0",
		Score:    0.61,
		Document: models.DocumentRef{ID: "doc-1"},
	},
}

// FakeProfileDocument returns a document with a single embedded text field
// at profile.bio, the shape used across the codec and client tests.
func FakeProfileDocument() (*models.Document, error) {
	bio, err := models.NewEmbText(gofakeit.Paragraph(2, 3, 12, " "))
	if err != nil {
		return nil, err
	}

	profile := models.NewDocument().
		Set("bio", bio).
		Set("city", gofakeit.City())

	doc := models.NewDocument().
		Set("name", gofakeit.Name()).
		Set("email", gofakeit.Email()).
		Set("age", float64(gofakeit.Number(18, 90))).
		Set("profile", profile)

	return doc, nil
}

// FakeBase64Image returns random bytes encoded as base64, usable as an
// EmbImage payload.
func FakeBase64Image() string {
	return base64.StdEncoding.EncodeToString([]byte(gofakeit.LetterN(32)))
}
