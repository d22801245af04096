// Package testutil provides an in-memory fake of the fintrack backend for
// tests. It speaks the same REST contract as the real server closely enough
// to drive the API client and the CLI end to end.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/fintrack-dev/fintrack/internal/daterange"
	"github.com/fintrack-dev/fintrack/internal/export"
	"github.com/fintrack-dev/fintrack/internal/model"
)

// Request is a request the backend received.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

type user struct {
	model.User
	password string
}

// Backend is an in-memory fintrack backend.
type Backend struct {
	mu           sync.Mutex
	now          time.Time
	nextID       int
	users        map[string]*user // by email
	tokens       map[string]int   // token -> user id
	transactions []model.Transaction
	categories   []model.Category
	accounts     []model.Account
	deposits     []model.Deposit
	requests     []Request
	overrides    map[string]http.HandlerFunc
}

// NewBackend returns an empty backend.
func NewBackend() *Backend {
	return &Backend{
		now:       time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
		nextID:    1,
		users:     make(map[string]*user),
		tokens:    make(map[string]int),
		overrides: make(map[string]http.HandlerFunc),
	}
}

// Start serves the backend on a local test server that is closed when the
// caller invokes the returned server's Close.
func (b *Backend) Start() *httptest.Server {
	return httptest.NewServer(b.Handler())
}

// Handler returns the backend's router.
func (b *Backend) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(b.record)
	r.Use(b.override)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", b.register)
		r.Post("/auth/login", b.login)

		r.Group(func(r chi.Router) {
			r.Use(b.authenticate)

			r.Get("/auth/me", b.me)
			r.Post("/auth/telegram-link-code", b.telegramLinkCode)

			r.Get("/statistics/summary", b.summary)
			r.Get("/statistics/by-category", b.byCategory)
			r.Get("/statistics/trend", b.trend)

			r.Get("/transactions", b.listTransactions)
			r.Post("/transactions", b.createTransaction)
			r.Post("/transactions/bulk-categorize", b.bulkCategorize)
			r.Get("/transactions/{id}", b.getTransaction)
			r.Put("/transactions/{id}", b.updateTransaction)
			r.Delete("/transactions/{id}", b.deleteTransaction)

			r.Get("/categories", b.listCategories)
			r.Post("/categories", b.createCategory)
			r.Put("/categories/{id}", b.updateCategory)
			r.Delete("/categories/{id}", b.deleteCategory)

			r.Get("/accounts", b.listAccounts)
			r.Post("/accounts", b.createAccount)
			r.Get("/accounts/{id}", b.getAccount)
			r.Put("/accounts/{id}", b.updateAccount)
			r.Delete("/accounts/{id}", b.deleteAccount)

			r.Get("/deposits", b.listDeposits)
			r.Post("/deposits", b.createDeposit)
			r.Get("/deposits/{id}", b.getDeposit)
			r.Put("/deposits/{id}", b.updateDeposit)
			r.Delete("/deposits/{id}", b.deleteDeposit)
			r.Post("/deposits/{id}/close", b.closeDeposit)

			r.Get("/export/csv", b.exportCSV)
		})
	})
	return r
}

// Override replaces the handler for method and path, e.g. to simulate a
// failing or malformed endpoint.
func (b *Backend) Override(method, path string, h http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.overrides[method+" "+path] = h
}

// Requests returns every request received so far.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Request, len(b.requests))
	copy(out, b.requests)
	return out
}

// LastRequest returns the most recent request received for path.
func (b *Backend) LastRequest(path string) (Request, bool) {
	reqs := b.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Path == path {
			return reqs[i], true
		}
	}
	return Request{}, false
}

// --- seeding ---

// SeedUser registers a user and returns a valid access token for it.
func (b *Backend) SeedUser(email, password string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.addUser(email, password)
	return b.issueToken(u)
}

// SeedCategory adds a category.
func (b *Backend) SeedCategory(name string) model.Category {
	b.mu.Lock()
	defer b.mu.Unlock()
	c := model.Category{ID: b.id(), Name: name}
	b.categories = append(b.categories, c)
	return c
}

// SeedTransaction adds an expense. A zero categoryID leaves it uncategorized.
func (b *Backend) SeedTransaction(date model.Date, amount, description string, categoryID int) model.Transaction {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := model.Transaction{
		ID:              b.id(),
		Amount:          decimal.RequireFromString(amount),
		Description:     description,
		TransactionDate: model.NewTimestamp(date.Time().Add(10 * time.Hour)),
		Type:            model.TransactionTypeExpense,
		CreatedAt:       model.NewTimestamp(b.now),
		UpdatedAt:       model.NewTimestamp(b.now),
	}
	if categoryID != 0 {
		id := categoryID
		t.CategoryID = &id
	}
	b.transactions = append(b.transactions, t)
	return t
}

// SeedAccount adds an account.
func (b *Backend) SeedAccount(name string, typ model.AccountType, balance string) model.Account {
	b.mu.Lock()
	defer b.mu.Unlock()
	a := model.Account{
		ID:          b.id(),
		Name:        name,
		AccountType: typ,
		Currency:    model.DefaultCurrency,
		Balance:     decimal.RequireFromString(balance),
		CreatedAt:   model.NewTimestamp(b.now),
		UpdatedAt:   model.NewTimestamp(b.now),
	}
	b.accounts = append(b.accounts, a)
	return a
}

// SeedDeposit adds an active deposit.
func (b *Backend) SeedDeposit(accountID int, name, amount, rate string, start, end model.Date) model.Deposit {
	b.mu.Lock()
	defer b.mu.Unlock()
	d := model.Deposit{
		ID:           b.id(),
		AccountID:    accountID,
		Name:         name,
		Amount:       decimal.RequireFromString(amount),
		InterestRate: decimal.RequireFromString(rate),
		StartDate:    start,
		EndDate:      end,
		Status:       model.DepositStatusActive,
		CreatedAt:    model.NewTimestamp(b.now),
		UpdatedAt:    model.NewTimestamp(b.now),
	}
	b.deposits = append(b.deposits, d)
	return d
}

// Transactions returns the stored transactions.
func (b *Backend) Transactions() []model.Transaction {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.Transaction, len(b.transactions))
	for i, t := range b.transactions {
		out[i] = b.withCategoryName(t)
	}
	return out
}

// Deposits returns the stored deposits.
func (b *Backend) Deposits() []model.Deposit {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.Deposit, len(b.deposits))
	copy(out, b.deposits)
	return out
}

// --- middleware ---

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}
		b.mu.Lock()
		b.requests = append(b.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) override(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		h, ok := b.overrides[r.Method+" "+r.URL.Path]
		b.mu.Unlock()
		if ok {
			h(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		b.mu.Lock()
		_, known := b.tokens[tok]
		b.mu.Unlock()
		if !ok || !known {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- auth ---

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var in model.Credentials
	if !decode(w, r, &in) {
		return
	}
	if in.Email == "" || in.Password == "" {
		writeValidation(w, "email and password are required")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.users[in.Email]; exists {
		writeDetail(w, http.StatusBadRequest, "Email already registered")
		return
	}
	u := b.addUser(in.Email, in.Password)
	writeJSON(w, http.StatusOK, u.User)
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var in model.Credentials
	if !decode(w, r, &in) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.users[in.Email]
	if !ok || u.password != in.Password {
		writeDetail(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}
	writeJSON(w, http.StatusOK, model.Token{AccessToken: b.issueToken(u), TokenType: "bearer"})
}

func (b *Backend) me(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.userFor(r)
	if u == nil {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, u.User)
}

func (b *Backend) telegramLinkCode(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.userFor(r)
	writeJSON(w, http.StatusOK, model.TelegramLinkCode{
		Code:      fmt.Sprintf("LINK%04d", u.ID),
		ExpiresAt: model.NewTimestamp(b.now.Add(10 * time.Minute)),
	})
}

// --- statistics ---

func (b *Backend) summary(w http.ResponseWriter, r *http.Request) {
	rng, ok := rangeParam(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	s := model.Summary{TotalAmount: decimal.Zero}
	for _, t := range b.transactions {
		if rng.Contains(t.TransactionDate.Date()) {
			s.TotalAmount = s.TotalAmount.Add(t.Amount)
			s.TransactionCount++
		}
	}
	writeJSON(w, http.StatusOK, s)
}

func (b *Backend) byCategory(w http.ResponseWriter, r *http.Request) {
	rng, ok := rangeParam(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	byName := make(map[string]*model.CategoryTotal)
	for _, t := range b.transactions {
		if t.CategoryID == nil || !rng.Contains(t.TransactionDate.Date()) {
			continue
		}
		name := b.categoryName(*t.CategoryID)
		ct, ok := byName[name]
		if !ok {
			ct = &model.CategoryTotal{Category: name, Total: decimal.Zero}
			byName[name] = ct
		}
		ct.Total = ct.Total.Add(t.Amount)
		ct.Count++
	}
	out := make([]model.CategoryTotal, 0, len(byName))
	for _, ct := range byName {
		out = append(out, *ct)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) trend(w http.ResponseWriter, r *http.Request) {
	rng, ok := rangeParam(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	byPeriod := make(map[string]decimal.Decimal)
	for _, t := range b.transactions {
		d := t.TransactionDate.Date()
		if !rng.Contains(d) {
			continue
		}
		period := fmt.Sprintf("%04d-%02d", d.Year, int(d.Month))
		byPeriod[period] = byPeriod[period].Add(t.Amount)
	}
	out := make([]model.TrendPoint, 0, len(byPeriod))
	for p, amt := range byPeriod {
		out = append(out, model.TrendPoint{Period: p, Amount: amt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	writeJSON(w, http.StatusOK, out)
}

// --- transactions ---

func (b *Backend) listTransactions(w http.ResponseWriter, r *http.Request) {
	rng, ok := rangeParam(w, r)
	if !ok {
		return
	}
	skip := intParam(r, "skip", 0)
	limit := intParam(r, "limit", 100)

	b.mu.Lock()
	defer b.mu.Unlock()
	var matched []model.Transaction
	for _, t := range b.transactions {
		if rng.Contains(t.TransactionDate.Date()) {
			matched = append(matched, b.withCategoryName(t))
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].TransactionDate.After(matched[j].TransactionDate.Time)
	})
	writeJSON(w, http.StatusOK, page(matched, skip, limit))
}

func (b *Backend) getTransaction(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findTransaction(w, r)
	if i < 0 {
		return
	}
	writeJSON(w, http.StatusOK, b.withCategoryName(b.transactions[i]))
}

func (b *Backend) createTransaction(w http.ResponseWriter, r *http.Request) {
	var in model.TransactionCreate
	if !decode(w, r, &in) {
		return
	}
	if in.Description == "" {
		writeValidation(w, "description is required")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	typ := in.Type
	if typ == "" {
		typ = model.TransactionTypeExpense
	}
	t := model.Transaction{
		ID:              b.id(),
		Amount:          in.Amount,
		Description:     in.Description,
		TransactionDate: in.TransactionDate,
		Type:            typ,
		CategoryID:      in.CategoryID,
		CreatedAt:       model.NewTimestamp(b.now),
		UpdatedAt:       model.NewTimestamp(b.now),
	}
	if t.TransactionDate.IsZero() {
		t.TransactionDate = model.NewTimestamp(b.now)
	}
	b.transactions = append(b.transactions, t)
	writeJSON(w, http.StatusOK, b.withCategoryName(t))
}

func (b *Backend) updateTransaction(w http.ResponseWriter, r *http.Request) {
	var in model.TransactionUpdate
	if !decode(w, r, &in) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findTransaction(w, r)
	if i < 0 {
		return
	}
	t := &b.transactions[i]
	if in.Amount != nil {
		t.Amount = *in.Amount
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.TransactionDate != nil {
		t.TransactionDate = *in.TransactionDate
	}
	if in.CategoryID != nil {
		id := *in.CategoryID
		t.CategoryID = &id
	}
	t.UpdatedAt = model.NewTimestamp(b.now)
	writeJSON(w, http.StatusOK, b.withCategoryName(*t))
}

func (b *Backend) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findTransaction(w, r)
	if i < 0 {
		return
	}
	b.transactions = append(b.transactions[:i], b.transactions[i+1:]...)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted"})
}

func (b *Backend) bulkCategorize(w http.ResponseWriter, r *http.Request) {
	catID, err := strconv.Atoi(r.URL.Query().Get("category_id"))
	if err != nil {
		writeValidation(w, "category_id must be an integer")
		return
	}
	var ids []int
	if !decode(w, r, &ids) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.categoryName(catID) == "" {
		writeDetail(w, http.StatusNotFound, "Category not found")
		return
	}
	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	n := 0
	for i := range b.transactions {
		if want[b.transactions[i].ID] {
			id := catID
			b.transactions[i].CategoryID = &id
			n++
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Updated %d transactions", n)})
}

// --- categories ---

func (b *Backend) listCategories(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.Category, len(b.categories))
	for i, c := range b.categories {
		c.TransactionCount = 0
		for _, t := range b.transactions {
			if t.CategoryID != nil && *t.CategoryID == c.ID {
				c.TransactionCount++
			}
		}
		out[i] = c
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) createCategory(w http.ResponseWriter, r *http.Request) {
	var in model.CategoryInput
	if !decode(w, r, &in) {
		return
	}
	if in.Name == "" {
		writeValidation(w, "name is required")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.categories {
		if strings.EqualFold(c.Name, in.Name) {
			writeDetail(w, http.StatusBadRequest, "Category already exists")
			return
		}
	}
	c := model.Category{ID: b.id(), Name: in.Name, Description: in.Description}
	b.categories = append(b.categories, c)
	writeJSON(w, http.StatusOK, c)
}

func (b *Backend) updateCategory(w http.ResponseWriter, r *http.Request) {
	var in model.CategoryInput
	if !decode(w, r, &in) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i := findByID(w, r, len(b.categories), func(i int) int { return b.categories[i].ID }, "Category")
	if i < 0 {
		return
	}
	if in.Name != "" {
		b.categories[i].Name = in.Name
	}
	b.categories[i].Description = in.Description
	writeJSON(w, http.StatusOK, b.categories[i])
}

func (b *Backend) deleteCategory(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := findByID(w, r, len(b.categories), func(i int) int { return b.categories[i].ID }, "Category")
	if i < 0 {
		return
	}
	id := b.categories[i].ID
	b.categories = append(b.categories[:i], b.categories[i+1:]...)
	for j := range b.transactions {
		if t := &b.transactions[j]; t.CategoryID != nil && *t.CategoryID == id {
			t.CategoryID = nil
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}

// --- accounts ---

func (b *Backend) listAccounts(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.Account, len(b.accounts))
	copy(out, b.accounts)
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) getAccount(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := findByID(w, r, len(b.accounts), func(i int) int { return b.accounts[i].ID }, "Account")
	if i < 0 {
		return
	}
	writeJSON(w, http.StatusOK, b.accounts[i])
}

func (b *Backend) createAccount(w http.ResponseWriter, r *http.Request) {
	var in model.AccountCreate
	if !decode(w, r, &in) {
		return
	}
	if in.Name == "" || !in.AccountType.Valid() {
		writeValidation(w, "name and a valid account_type are required")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	a := model.Account{
		ID:          b.id(),
		Name:        in.Name,
		Description: in.Description,
		AccountType: in.AccountType,
		Currency:    in.Currency,
		Balance:     in.Balance,
		CreatedAt:   model.NewTimestamp(b.now),
		UpdatedAt:   model.NewTimestamp(b.now),
	}
	if a.Currency == "" {
		a.Currency = model.DefaultCurrency
	}
	b.accounts = append(b.accounts, a)
	writeJSON(w, http.StatusOK, a)
}

func (b *Backend) updateAccount(w http.ResponseWriter, r *http.Request) {
	var in model.AccountUpdate
	if !decode(w, r, &in) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i := findByID(w, r, len(b.accounts), func(i int) int { return b.accounts[i].ID }, "Account")
	if i < 0 {
		return
	}
	a := &b.accounts[i]
	if in.Name != nil {
		a.Name = *in.Name
	}
	if in.Description != nil {
		a.Description = *in.Description
	}
	if in.AccountType != nil {
		a.AccountType = *in.AccountType
	}
	if in.Balance != nil {
		a.Balance = *in.Balance
	}
	a.UpdatedAt = model.NewTimestamp(b.now)
	writeJSON(w, http.StatusOK, *a)
}

func (b *Backend) deleteAccount(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := findByID(w, r, len(b.accounts), func(i int) int { return b.accounts[i].ID }, "Account")
	if i < 0 {
		return
	}
	b.accounts = append(b.accounts[:i], b.accounts[i+1:]...)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Account deleted"})
}

// --- deposits ---

func (b *Backend) listDeposits(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.Deposit, len(b.deposits))
	copy(out, b.deposits)
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) getDeposit(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := findByID(w, r, len(b.deposits), func(i int) int { return b.deposits[i].ID }, "Deposit")
	if i < 0 {
		return
	}
	writeJSON(w, http.StatusOK, b.deposits[i])
}

func (b *Backend) createDeposit(w http.ResponseWriter, r *http.Request) {
	var in model.DepositCreate
	if !decode(w, r, &in) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	found := false
	for _, a := range b.accounts {
		if a.ID == in.AccountID {
			found = true
		}
	}
	if !found {
		writeDetail(w, http.StatusNotFound, "Account not found")
		return
	}
	d := model.Deposit{
		ID:           b.id(),
		AccountID:    in.AccountID,
		Name:         in.Name,
		Amount:       in.Amount,
		InterestRate: in.InterestRate,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Status:       model.DepositStatusActive,
		CreatedAt:    model.NewTimestamp(b.now),
		UpdatedAt:    model.NewTimestamp(b.now),
	}
	b.deposits = append(b.deposits, d)
	writeJSON(w, http.StatusOK, d)
}

func (b *Backend) updateDeposit(w http.ResponseWriter, r *http.Request) {
	var in model.DepositUpdate
	if !decode(w, r, &in) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i := findByID(w, r, len(b.deposits), func(i int) int { return b.deposits[i].ID }, "Deposit")
	if i < 0 {
		return
	}
	d := &b.deposits[i]
	if in.Name != nil {
		d.Name = *in.Name
	}
	if in.Amount != nil {
		d.Amount = *in.Amount
	}
	if in.InterestRate != nil {
		d.InterestRate = *in.InterestRate
	}
	if in.EndDate != nil {
		d.EndDate = *in.EndDate
	}
	if in.Status != nil {
		d.Status = *in.Status
	}
	d.UpdatedAt = model.NewTimestamp(b.now)
	writeJSON(w, http.StatusOK, *d)
}

func (b *Backend) deleteDeposit(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := findByID(w, r, len(b.deposits), func(i int) int { return b.deposits[i].ID }, "Deposit")
	if i < 0 {
		return
	}
	b.deposits = append(b.deposits[:i], b.deposits[i+1:]...)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Deposit deleted"})
}

func (b *Backend) closeDeposit(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := findByID(w, r, len(b.deposits), func(i int) int { return b.deposits[i].ID }, "Deposit")
	if i < 0 {
		return
	}
	if b.deposits[i].Status != model.DepositStatusActive {
		writeDetail(w, http.StatusBadRequest, "Deposit is not active")
		return
	}
	b.deposits[i].Status = model.DepositStatusCompleted
	b.deposits[i].UpdatedAt = model.NewTimestamp(b.now)
	writeJSON(w, http.StatusOK, b.deposits[i])
}

// --- export ---

func (b *Backend) exportCSV(w http.ResponseWriter, r *http.Request) {
	rng, ok := rangeParam(w, r)
	if !ok {
		return
	}
	catID := intParam(r, "category_id", 0)

	b.mu.Lock()
	var rows []model.Transaction
	for _, t := range b.transactions {
		if !rng.Contains(t.TransactionDate.Date()) {
			continue
		}
		if catID != 0 && (t.CategoryID == nil || *t.CategoryID != catID) {
			continue
		}
		rows = append(rows, b.withCategoryName(t))
	}
	today := model.DateOf(b.now)
	b.mu.Unlock()

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TransactionDate.After(rows[j].TransactionDate.Time)
	})

	out := make([]export.Row, len(rows))
	for i, t := range rows {
		out[i] = export.Row{
			ID:          t.ID,
			Date:        t.TransactionDate,
			Amount:      t.Amount,
			Description: t.Description,
			Category:    t.Category(),
		}
	}
	var buf bytes.Buffer
	if err := export.WriteRows(&buf, out); err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=transactions_%s.csv", today))
	_, _ = buf.WriteTo(w)
}

// --- helpers ---

func (b *Backend) id() int {
	id := b.nextID
	b.nextID++
	return id
}

func (b *Backend) addUser(email, password string) *user {
	u := &user{
		User: model.User{
			ID:        b.id(),
			Email:     email,
			IsActive:  true,
			CreatedAt: model.NewTimestamp(b.now),
		},
		password: password,
	}
	b.users[email] = u
	return u
}

func (b *Backend) issueToken(u *user) string {
	tok := fmt.Sprintf("token-%d-%d", u.ID, len(b.tokens)+1)
	b.tokens[tok] = u.ID
	return tok
}

func (b *Backend) userFor(r *http.Request) *user {
	tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	id, ok := b.tokens[tok]
	if !ok {
		return nil
	}
	for _, u := range b.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (b *Backend) categoryName(id int) string {
	for _, c := range b.categories {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

func (b *Backend) withCategoryName(t model.Transaction) model.Transaction {
	if t.CategoryID != nil {
		t.CategoryName = b.categoryName(*t.CategoryID)
	}
	return t
}

func (b *Backend) findTransaction(w http.ResponseWriter, r *http.Request) int {
	return findByID(w, r, len(b.transactions), func(i int) int { return b.transactions[i].ID }, "Transaction")
}

func findByID(w http.ResponseWriter, r *http.Request, n int, idAt func(int) int, kind string) int {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeValidation(w, "id must be an integer")
		return -1
	}
	for i := 0; i < n; i++ {
		if idAt(i) == id {
			return i
		}
	}
	writeDetail(w, http.StatusNotFound, kind+" not found")
	return -1
}

func rangeParam(w http.ResponseWriter, r *http.Request) (daterange.Range, bool) {
	var rng daterange.Range
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  **model.Date
	}{{"start_date", &rng.Start}, {"end_date", &rng.End}} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		d, err := model.ParseDate(v)
		if err != nil {
			writeValidation(w, p.name+" must be a date")
			return rng, false
		}
		*p.dst = &d
	}
	return rng, true
}

func intParam(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return def
	}
	return v
}

func page(txns []model.Transaction, skip, limit int) []model.Transaction {
	if skip >= len(txns) {
		return []model.Transaction{}
	}
	txns = txns[skip:]
	if limit < len(txns) {
		txns = txns[:limit]
	}
	return txns
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeValidation(w, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeValidation mimics the list-shaped detail of a 422 response.
func writeValidation(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"detail": []map[string]string{{"msg": msg, "type": "value_error"}},
	})
}
