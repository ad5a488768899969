// Package server exposes the calculation engines as a JSON HTTP API.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/wvoelker/finance-engine/internal/config"
	"github.com/wvoelker/finance-engine/internal/report"
	"github.com/wvoelker/finance-engine/pkg/convert"
	"github.com/wvoelker/finance-engine/pkg/growth"
	"github.com/wvoelker/finance-engine/pkg/loans"
	"github.com/wvoelker/finance-engine/pkg/payoff"
	"github.com/wvoelker/finance-engine/pkg/validation"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	sentryEnabled bool
}

// NewHandler constructs the HTTP handler that serves the calculation API.
// When sentryDSN is non-empty, server-side failures are also reported to
// Sentry.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version, sentryDSN string) (http.Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = 256 * 1024
	}
	if version == "" {
		version = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: version}

	if sentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: sentryDSN, Release: "finance-engine@" + version}); err != nil {
			return nil, fmt.Errorf("failed to initialize sentry: %w", err)
		}
		h.sentryEnabled = true
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/payoff", h.handlePayoff)
	mux.HandleFunc("/api/amortize", h.handleAmortize)
	mux.HandleFunc("/api/growth", h.handleGrowth)
	mux.HandleFunc("/api/goal", h.handleGoal)
	mux.HandleFunc("/api/convert", h.handleConvert)
	mux.HandleFunc("/api/plan", h.handlePlan)
	mux.HandleFunc("/api/version", h.handleVersion)

	return h.withRequestID(mux), nil
}

// withRequestID tags every request with a UUID, echoed in the response
// header and attached to the request log line.
func (h *handler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
		start := time.Now()
		next.ServeHTTP(w, r)
		h.logger.Debug("handled request",
			zap.String("op", "server.withRequestID"),
			zap.String("requestId", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type errorResponse struct {
	Error   string   `json:"error"`
	Reasons []string `json:"reasons,omitempty"`
}

func (h *handler) respondError(w http.ResponseWriter, status int, message string, reasons ...string) {
	if status >= http.StatusInternalServerError && h.sentryEnabled {
		sentry.CaptureMessage(message)
	}
	h.respondJSON(w, status, errorResponse{Error: message, Reasons: reasons})
}

func (h *handler) respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Warn("failed to encode response",
			zap.String("op", "server.respondJSON"),
			zap.Error(err),
		)
	}
}

// decodeJSON reads a size-limited JSON body into dst.
func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if r.Method != http.MethodPost {
		h.respondError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize))
			return false
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse request: %v", err))
		return false
	}
	return true
}

type debtDTO struct {
	Name           string  `json:"name"`
	Balance        float64 `json:"balance"`
	AnnualRate     float64 `json:"annualRate"`
	MinimumPayment float64 `json:"minimumPayment"`
}

type payoffRequest struct {
	Debts               []debtDTO `json:"debts"`
	ExtraMonthlyPayment float64   `json:"extraMonthlyPayment"`
}

type monthlyPaymentDTO struct {
	Month            int     `json:"month"`
	DebtName         string  `json:"debtName"`
	Payment          float64 `json:"payment"`
	PrincipalPayment float64 `json:"principalPayment"`
	InterestPayment  float64 `json:"interestPayment"`
	RemainingBalance float64 `json:"remainingBalance"`
}

type payoffResultDTO struct {
	Method           string              `json:"method"`
	TotalMonths      int                 `json:"totalMonths"`
	Years            float64             `json:"years"`
	TotalInterest    float64             `json:"totalInterest"`
	CapReached       bool                `json:"capReached"`
	MonthlyBreakdown []monthlyPaymentDTO `json:"monthlyBreakdown,omitempty"`
}

type payoffResponse struct {
	Snowball      payoffResultDTO `json:"snowball"`
	Avalanche     payoffResultDTO `json:"avalanche"`
	HasSavings    bool            `json:"hasSavings"`
	InterestSaved float64         `json:"interestSaved,omitempty"`
	MonthsSaved   int             `json:"monthsSaved,omitempty"`
	Warnings      []string        `json:"warnings,omitempty"`
}

func toPayoffResultDTO(res payoff.PayoffResult, includeBreakdown bool) payoffResultDTO {
	dto := payoffResultDTO{
		Method:        res.Method,
		TotalMonths:   res.TotalMonths,
		Years:         res.Years(),
		TotalInterest: res.TotalInterest,
		CapReached:    res.CapReached,
	}
	if includeBreakdown {
		dto.MonthlyBreakdown = make([]monthlyPaymentDTO, 0, len(res.MonthlyBreakdown))
		for _, mp := range res.MonthlyBreakdown {
			dto.MonthlyBreakdown = append(dto.MonthlyBreakdown, monthlyPaymentDTO{
				Month:            mp.Month,
				DebtName:         mp.DebtName,
				Payment:          mp.Payment,
				PrincipalPayment: mp.PrincipalPayment,
				InterestPayment:  mp.InterestPayment,
				RemainingBalance: mp.RemainingBalance,
			})
		}
	}
	return dto
}

func (h *handler) handlePayoff(w http.ResponseWriter, r *http.Request) {
	var req payoffRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	debts := make([]payoff.Debt, 0, len(req.Debts))
	for _, d := range req.Debts {
		debts = append(debts, payoff.Debt{
			Name:           d.Name,
			Balance:        d.Balance,
			AnnualRate:     d.AnnualRate,
			MinimumPayment: d.MinimumPayment,
		})
	}

	result := validation.ValidateDebts(debts, req.ExtraMonthlyPayment)
	if !result.Valid() {
		h.respondError(w, http.StatusUnprocessableEntity, "invalid payoff inputs", result.Reasons...)
		return
	}

	includeBreakdown := r.URL.Query().Get("summary") != "true"
	comparison := payoff.Compare(h.logger, debts, req.ExtraMonthlyPayment)
	h.respondJSON(w, http.StatusOK, payoffResponse{
		Snowball:      toPayoffResultDTO(comparison.Snowball, includeBreakdown),
		Avalanche:     toPayoffResultDTO(comparison.Avalanche, includeBreakdown),
		HasSavings:    comparison.HasSavings,
		InterestSaved: comparison.InterestSaved,
		MonthsSaved:   comparison.MonthsSaved,
		Warnings:      result.Warnings,
	})
}

type amortizeRequest struct {
	Principal         float64 `json:"principal"`
	AnnualRate        float64 `json:"annualRate"`
	TermMonths        int     `json:"termMonths"`
	TermYears         int     `json:"termYears"`
	PropertyTaxAnnual float64 `json:"propertyTaxAnnual"`
	InsuranceAnnual   float64 `json:"insuranceAnnual"`
	HOAMonthly        float64 `json:"hoaMonthly"`
	PMIMonthly        float64 `json:"pmiMonthly"`
	PMICutoffPercent  float64 `json:"pmiCutoffPercent"`
}

type amortizeEntryDTO struct {
	Month     int     `json:"month"`
	Payment   float64 `json:"payment"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

type amortizeResponse struct {
	Payment          float64            `json:"payment"`
	TotalInterest    float64            `json:"totalInterest"`
	TotalPaid        float64            `json:"totalPaid"`
	AllInMonthlyCost float64            `json:"allInMonthlyCost,omitempty"`
	Schedule         []amortizeEntryDTO `json:"schedule,omitempty"`
}

func (h *handler) handleAmortize(w http.ResponseWriter, r *http.Request) {
	var req amortizeRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	term := req.TermMonths
	if term == 0 {
		term = req.TermYears * 12
	}

	result := validation.ValidateLoan(req.Principal, req.AnnualRate, term)
	if !result.Valid() {
		h.respondError(w, http.StatusUnprocessableEntity, "invalid loan inputs", result.Reasons...)
		return
	}

	schedule := loans.Amortize(h.logger, req.Principal, req.AnnualRate, term)

	resp := amortizeResponse{
		Payment:       schedule.Payment,
		TotalInterest: schedule.TotalInterest,
		TotalPaid:     schedule.TotalPaid(),
	}
	costs := loans.MortgageCosts{
		PropertyTaxAnnual: req.PropertyTaxAnnual,
		InsuranceAnnual:   req.InsuranceAnnual,
		HOAMonthly:        req.HOAMonthly,
		PMIMonthly:        req.PMIMonthly,
		PMICutoffPercent:  req.PMICutoffPercent,
	}
	if req.PropertyTaxAnnual > 0 || req.InsuranceAnnual > 0 || req.HOAMonthly > 0 || req.PMIMonthly > 0 {
		resp.AllInMonthlyCost = costs.MonthlyCost(schedule.Payment, req.Principal, req.Principal)
	}
	if r.URL.Query().Get("summary") != "true" {
		resp.Schedule = make([]amortizeEntryDTO, 0, len(schedule.Entries))
		for _, entry := range schedule.Entries {
			resp.Schedule = append(resp.Schedule, amortizeEntryDTO{
				Month:     entry.Month,
				Payment:   entry.Payment,
				Principal: entry.Principal,
				Interest:  entry.Interest,
				Balance:   entry.Balance,
			})
		}
	}

	h.respondJSON(w, http.StatusOK, resp)
}

type growthRequest struct {
	Principal           float64 `json:"principal"`
	MonthlyContribution float64 `json:"monthlyContribution"`
	AnnualRate          float64 `json:"annualRate"`
	Years               int     `json:"years"`
	CompoundsPerYear    int     `json:"compoundsPerYear"`
	InflationRate       float64 `json:"inflationRate"`
}

type yearlyBreakdownDTO struct {
	Year      int     `json:"year"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Total     float64 `json:"total"`
}

type growthResponse struct {
	TotalValue         float64              `json:"totalValue"`
	TotalContributions float64              `json:"totalContributions"`
	TotalInterest      float64              `json:"totalInterest"`
	InflationAdjusted  float64              `json:"inflationAdjusted,omitempty"`
	Yearly             []yearlyBreakdownDTO `json:"yearly,omitempty"`
	Warnings           []string             `json:"warnings,omitempty"`
}

func (h *handler) handleGrowth(w http.ResponseWriter, r *http.Request) {
	var req growthRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	compounds := req.CompoundsPerYear
	if compounds == 0 {
		compounds = 12
	}

	result := validation.ValidateGrowth(req.Principal, req.MonthlyContribution, req.AnnualRate, req.Years, compounds)
	if !result.Valid() {
		h.respondError(w, http.StatusUnprocessableEntity, "invalid growth inputs", result.Reasons...)
		return
	}

	projection := growth.Project(h.logger, req.Principal, req.MonthlyContribution, req.AnnualRate, req.Years, compounds)

	resp := growthResponse{
		TotalValue:         projection.TotalValue,
		TotalContributions: projection.TotalContributions,
		TotalInterest:      projection.TotalInterest,
		Warnings:           result.Warnings,
	}
	if req.InflationRate > 0 {
		resp.InflationAdjusted = growth.AdjustForInflation(projection.TotalValue, req.InflationRate, req.Years)
	}
	for _, year := range projection.Yearly {
		resp.Yearly = append(resp.Yearly, yearlyBreakdownDTO{
			Year:      year.Year,
			Principal: year.Principal,
			Interest:  year.Interest,
			Total:     year.Total,
		})
	}

	h.respondJSON(w, http.StatusOK, resp)
}

type goalRequest struct {
	StartingBalance     float64 `json:"startingBalance"`
	MonthlyContribution float64 `json:"monthlyContribution"`
	AnnualRate          float64 `json:"annualRate"`
	TargetAmount        float64 `json:"targetAmount"`
	MonthlyExpenses     float64 `json:"monthlyExpenses"`
	TargetMonths        float64 `json:"targetMonths"`
}

type goalResponse struct {
	Target  float64 `json:"target"`
	Months  int     `json:"months"`
	Reached bool    `json:"reached"`
}

func (h *handler) handleGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	goal := config.Goal{
		StartingBalance:     req.StartingBalance,
		MonthlyContribution: req.MonthlyContribution,
		AnnualRate:          req.AnnualRate,
		TargetAmount:        req.TargetAmount,
		MonthlyExpenses:     req.MonthlyExpenses,
		TargetMonths:        req.TargetMonths,
	}
	target := goal.Target()

	result := validation.ValidateGoal(req.StartingBalance, req.MonthlyContribution, req.AnnualRate, target)
	if !result.Valid() {
		h.respondError(w, http.StatusUnprocessableEntity, "invalid goal inputs", result.Reasons...)
		return
	}

	months, reached := growth.MonthsToGoal(h.logger, req.StartingBalance, req.MonthlyContribution, req.AnnualRate, target)
	h.respondJSON(w, http.StatusOK, goalResponse{Target: target, Months: months, Reached: reached})
}

type convertRequest struct {
	Tips       []config.TipRequest      `json:"tips"`
	SalesTaxes []config.SalesTaxRequest `json:"salesTaxes"`
	Currencies []config.CurrencyRequest `json:"currencies"`
}

type tipLineDTO struct {
	Bill       float64 `json:"bill"`
	TipPercent float64 `json:"tipPercent"`
	People     int     `json:"people"`
	TipAmount  float64 `json:"tipAmount"`
	Total      float64 `json:"total"`
	PerPerson  float64 `json:"perPerson"`
}

type salesTaxLineDTO struct {
	Price      float64 `json:"price"`
	TaxPercent float64 `json:"taxPercent"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`
}

type currencyLineDTO struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Result float64 `json:"result,omitempty"`
	Error  string  `json:"error,omitempty"`
}

type convertResponse struct {
	Tips       []tipLineDTO      `json:"tips,omitempty"`
	SalesTaxes []salesTaxLineDTO `json:"salesTaxes,omitempty"`
	Currencies []currencyLineDTO `json:"currencies,omitempty"`
}

func (h *handler) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	var resp convertResponse
	for _, tip := range req.Tips {
		result := convert.Tip(tip.Bill, tip.TipPercent, tip.People)
		resp.Tips = append(resp.Tips, tipLineDTO{
			Bill:       tip.Bill,
			TipPercent: tip.TipPercent,
			People:     tip.People,
			TipAmount:  result.TipAmount,
			Total:      result.Total,
			PerPerson:  result.PerPerson,
		})
	}
	for _, tax := range req.SalesTaxes {
		result := convert.SalesTax(tax.Price, tax.TaxPercent)
		resp.SalesTaxes = append(resp.SalesTaxes, salesTaxLineDTO{
			Price:      tax.Price,
			TaxPercent: tax.TaxPercent,
			Tax:        result.Tax,
			Total:      result.Total,
		})
	}
	for _, currency := range req.Currencies {
		line := currencyLineDTO{Amount: currency.Amount, From: currency.From, To: currency.To}
		amount, err := convert.Currency(currency.Amount, currency.From, currency.To)
		if err != nil {
			line.Error = err.Error()
		} else {
			line.Result = amount
		}
		resp.Currencies = append(resp.Currencies, line)
	}

	h.respondJSON(w, http.StatusOK, resp)
}

type planResponse struct {
	Payoff   *payoffResponse     `json:"payoff,omitempty"`
	Loans    []planLoanDTO       `json:"loans,omitempty"`
	Growth   []planGrowthDTO     `json:"growth,omitempty"`
	Goals    []planGoalDTO       `json:"goals,omitempty"`
	Convert  *convertResponse    `json:"conversions,omitempty"`
	Warnings []string            `json:"warnings,omitempty"`
	Duration string              `json:"duration"`
	Skipped  map[string][]string `json:"skipped,omitempty"`
}

type planLoanDTO struct {
	Name             string  `json:"name"`
	Payment          float64 `json:"payment"`
	TotalInterest    float64 `json:"totalInterest"`
	TotalPaid        float64 `json:"totalPaid"`
	AllInMonthlyCost float64 `json:"allInMonthlyCost,omitempty"`
}

type planGrowthDTO struct {
	Name               string  `json:"name"`
	TotalValue         float64 `json:"totalValue"`
	TotalContributions float64 `json:"totalContributions"`
	TotalInterest      float64 `json:"totalInterest"`
	InflationAdjusted  float64 `json:"inflationAdjusted,omitempty"`
}

type planGoalDTO struct {
	Name    string  `json:"name"`
	Target  float64 `json:"target"`
	Months  int     `json:"months"`
	Reached bool    `json:"reached"`
}

// handlePlan accepts a multipart upload of a full YAML plan and runs every
// configured calculation, returning the summarized report.
func (h *handler) handlePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.respondError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize))
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing plan file")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.handlePlan"),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read plan: %v", err))
		return
	}

	var conf config.Configuration
	if err := yaml.Unmarshal(buf.Bytes(), &conf); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("error reading plan data, %v", err))
		return
	}

	generated := report.Generate(h.logger, conf)
	h.respondJSON(w, http.StatusOK, toPlanResponse(generated, time.Since(start)))
}

func toPlanResponse(generated report.Report, duration time.Duration) planResponse {
	resp := planResponse{
		Warnings: generated.Warnings,
		Duration: duration.String(),
		Skipped:  map[string][]string{},
	}

	if generated.Payoff != nil {
		if len(generated.Payoff.Skipped) > 0 {
			resp.Skipped["payoff"] = generated.Payoff.Skipped
		} else {
			comparison := generated.Payoff.Comparison
			resp.Payoff = &payoffResponse{
				Snowball:      toPayoffResultDTO(comparison.Snowball, false),
				Avalanche:     toPayoffResultDTO(comparison.Avalanche, false),
				HasSavings:    comparison.HasSavings,
				InterestSaved: comparison.InterestSaved,
				MonthsSaved:   comparison.MonthsSaved,
			}
		}
	}

	for _, loan := range generated.Loans {
		if len(loan.Skipped) > 0 {
			resp.Skipped["loan:"+loan.Name] = loan.Skipped
			continue
		}
		resp.Loans = append(resp.Loans, planLoanDTO{
			Name:             loan.Name,
			Payment:          loan.Schedule.Payment,
			TotalInterest:    loan.Schedule.TotalInterest,
			TotalPaid:        loan.Schedule.TotalPaid(),
			AllInMonthlyCost: loan.AllInMonthlyCost,
		})
	}

	for _, scenario := range generated.Growth {
		if len(scenario.Skipped) > 0 {
			resp.Skipped["growth:"+scenario.Name] = scenario.Skipped
			continue
		}
		resp.Growth = append(resp.Growth, planGrowthDTO{
			Name:               scenario.Name,
			TotalValue:         scenario.Projection.TotalValue,
			TotalContributions: scenario.Projection.TotalContributions,
			TotalInterest:      scenario.Projection.TotalInterest,
			InflationAdjusted:  scenario.InflationAdjusted,
		})
	}

	for _, goal := range generated.Goals {
		if len(goal.Skipped) > 0 {
			resp.Skipped["goal:"+goal.Name] = goal.Skipped
			continue
		}
		resp.Goals = append(resp.Goals, planGoalDTO{
			Name:    goal.Name,
			Target:  goal.Target,
			Months:  goal.Months,
			Reached: goal.Reached,
		})
	}

	if generated.Conversions != nil {
		converted := &convertResponse{}
		for _, tip := range generated.Conversions.Tips {
			converted.Tips = append(converted.Tips, tipLineDTO{
				Bill:       tip.Request.Bill,
				TipPercent: tip.Request.TipPercent,
				People:     tip.Request.People,
				TipAmount:  tip.Result.TipAmount,
				Total:      tip.Result.Total,
				PerPerson:  tip.Result.PerPerson,
			})
		}
		for _, tax := range generated.Conversions.SalesTaxes {
			converted.SalesTaxes = append(converted.SalesTaxes, salesTaxLineDTO{
				Price:      tax.Request.Price,
				TaxPercent: tax.Request.TaxPercent,
				Tax:        tax.Result.Tax,
				Total:      tax.Result.Total,
			})
		}
		for _, currency := range generated.Conversions.Currencies {
			converted.Currencies = append(converted.Currencies, currencyLineDTO{
				Amount: currency.Request.Amount,
				From:   currency.Request.From,
				To:     currency.Request.To,
				Result: currency.Result,
				Error:  currency.Err,
			})
		}
		resp.Convert = converted
	}

	if len(resp.Skipped) == 0 {
		resp.Skipped = nil
	}
	return resp
}

type versionResponse struct {
	Version string `json:"version"`
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.respondError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
		return
	}
	h.respondJSON(w, http.StatusOK, versionResponse{Version: h.version})
}
