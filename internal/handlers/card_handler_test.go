package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"ledgerly/internal/models"
	"ledgerly/internal/services"
)

func setupCardRouter() *gin.Engine {
	handler := NewCardHandler(services.NewCardService(services.DefaultCards()))
	r := gin.New()
	r.GET("/cards", handler.ListCards)
	r.GET("/cards/credit/summary", handler.GetCreditSummary)
	r.GET("/cards/:id", handler.GetCard)
	return r
}

func TestCardHandler_ListCards(t *testing.T) {
	t.Run("lists every card", func(t *testing.T) {
		rec := doRequest(setupCardRouter(), "GET", "/cards", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		cards := parseJSON(t, rec)["cards"].([]interface{})
		if len(cards) != len(services.DefaultCards()) {
			t.Errorf("expected %d cards, got %d", len(services.DefaultCards()), len(cards))
		}
	})

	t.Run("filters by type", func(t *testing.T) {
		rec := doRequest(setupCardRouter(), "GET", "/cards?type=credit", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		for _, c := range parseJSON(t, rec)["cards"].([]interface{}) {
			if c.(map[string]interface{})["type"] != string(models.CardTypeCredit) {
				t.Errorf("expected only credit cards, got %v", c)
			}
		}
	})

	t.Run("returns 400 on an unknown type", func(t *testing.T) {
		rec := doRequest(setupCardRouter(), "GET", "/cards?type=prepaid", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestCardHandler_GetCard(t *testing.T) {
	t.Run("returns the card", func(t *testing.T) {
		rec := doRequest(setupCardRouter(), "GET", "/cards/1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		card := parseJSON(t, rec)["card"].(map[string]interface{})
		if card["id"] != "1" {
			t.Errorf("expected card 1, got %v", card["id"])
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		rec := doRequest(setupCardRouter(), "GET", "/cards/999", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CARD_NOT_FOUND")
	})
}

func TestCardHandler_GetCreditSummary(t *testing.T) {
	rec := doRequest(setupCardRouter(), "GET", "/cards/credit/summary", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	summary := parseJSON(t, rec)["summary"].(map[string]interface{})
	if summary["card_count"].(float64) < 1 {
		t.Errorf("expected at least one credit card, got %v", summary["card_count"])
	}
}
