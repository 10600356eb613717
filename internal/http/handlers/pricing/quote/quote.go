// Package quote реализует HTTP-обработчик расчёта стоимости милей.
//
// Handler принимает параметры расчёта строками, разбирает их в decimal
// и возвращает разбивку стоимости. Расчёт детерминированный и не требует
// обращения к базе данных.
package quote

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/itinerary-planner/internal/http/response"
	"github.com/magabrotheeeer/itinerary-planner/internal/lib/pricing"
	"github.com/magabrotheeeer/itinerary-planner/internal/lib/sl"
)

// Request структура для разбора тела запроса расчёта.
// Числа передаются строками, чтобы не терять точность на float64.
type Request struct {
	Miles         string `json:"miles" validate:"required"`
	MilePrice     string `json:"mile_price" validate:"required"`
	FxRate        string `json:"fx_rate" validate:"required"`
	FeePercent    string `json:"fee_percent"`
	MarginPercent string `json:"margin_percent"`
}

// Handler обрабатывает запросы на расчёт стоимости милей.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	validate *validator.Validate // Валидатор структуры запроса
}

// New создает новый Handler с переданным логгером.
func New(log *slog.Logger) *Handler {
	return &Handler{
		log:      log,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Рассчитать стоимость милей
// @Description Возвращает разбивку стоимости милей в локальной валюте.
// @Tags Pricing
// @Accept  json
// @Produce  json
// @Param request body Request true "Параметры расчёта"
// @Success 200 {object} map[string]any "Разбивка стоимости"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры"
// @Security BearerAuth
// @Router /pricing/quote [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pricing.quote"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		validateErrs := err.(validator.ValidationErrors)
		log.Error("invalid request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(validateErrs))
		return
	}

	input, err := parseInput(req)
	if err != nil {
		log.Error("failed to parse quote input", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid quote parameters"))
		return
	}

	breakdown, err := pricing.Quote(input)
	if err != nil {
		log.Error("failed to compute quote", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid quote parameters"))
		return
	}

	log.Info("success to compute quote", slog.String("total", breakdown.Total.String()))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"quote": breakdown,
	}))
}

func parseInput(req Request) (pricing.QuoteInput, error) {
	var in pricing.QuoteInput
	var err error
	if in.Miles, err = decimal.NewFromString(req.Miles); err != nil {
		return in, err
	}
	if in.MilePrice, err = decimal.NewFromString(req.MilePrice); err != nil {
		return in, err
	}
	if in.FxRate, err = decimal.NewFromString(req.FxRate); err != nil {
		return in, err
	}
	in.FeePercent = decimal.Zero
	if req.FeePercent != "" {
		if in.FeePercent, err = decimal.NewFromString(req.FeePercent); err != nil {
			return in, err
		}
	}
	in.MarginPercent = decimal.Zero
	if req.MarginPercent != "" {
		if in.MarginPercent, err = decimal.NewFromString(req.MarginPercent); err != nil {
			return in, err
		}
	}
	return in, nil
}
