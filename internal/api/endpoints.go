package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/moneydash/moneydash/internal/models"
	"github.com/moneydash/moneydash/internal/session"
	"github.com/moneydash/moneydash/internal/types"
)

// Login authenticates and stores the resulting session.
func (c *Client) Login(ctx context.Context, email, password string) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/login", nil, models.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return models.AuthResponse{}, err
	}

	err = c.session.Set(session.State{
		AccessToken:  resp.Token,
		RefreshToken: resp.RefreshToken,
		User:         resp.User,
	})
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("persist session: %w", err)
	}

	return resp, nil
}

// Register creates an account. The backend requires account activation
// before login, so no session is stored here.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/register", nil, req, &resp)
	return resp, err
}

// Logout clears the session. The backend keeps no server-side session, so
// this is purely local.
func (c *Client) Logout() {
	c.session.Clear()
}

// ForgotPassword triggers the reset mail.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/forgot-password", nil, map[string]string{"email": email}, nil)
}

// ResetPassword sets a new password using a reset token from the mail.
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	return c.do(ctx, http.MethodPost, "/reset-password", nil, map[string]string{"token": token, "password": password}, nil)
}

// Profile fetches the current user.
func (c *Client) Profile(ctx context.Context) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodGet, "/profile", nil, nil, &user)
	return user, err
}

// UpdateProfileImage stores a new profile image URL. Uploading the image
// itself happens against a third-party host and is not this client's job.
func (c *Client) UpdateProfileImage(ctx context.Context, userID int64, imageURL string) error {
	body := map[string]any{"userId": userID, "profileImageUrl": imageURL}
	return c.do(ctx, http.MethodPut, "/update-profile-image", nil, body, nil)
}

// Categories lists all categories of the current user.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &categories)
	return categories, err
}

// CreateCategory adds a category.
func (c *Client) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	var created models.Category
	err := c.do(ctx, http.MethodPost, "/categories", nil, category, &created)
	return created, err
}

// UpdateCategory replaces a category.
func (c *Client) UpdateCategory(ctx context.Context, id int64, category models.Category) (models.Category, error) {
	var updated models.Category
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", id), nil, category, &updated)
	return updated, err
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d", id), nil, nil, nil)
}

// Income lists all income records.
func (c *Client) Income(ctx context.Context) ([]models.Transaction, error) {
	var income []models.Transaction
	err := c.do(ctx, http.MethodGet, "/income", nil, nil, &income)
	return income, err
}

// AddIncome creates an income record.
func (c *Client) AddIncome(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	t.Type = models.TypeIncome
	var created models.Transaction
	err := c.do(ctx, http.MethodPost, "/income", nil, t, &created)
	return created, err
}

// UpdateIncome replaces an income record.
func (c *Client) UpdateIncome(ctx context.Context, id int64, t models.Transaction) (models.Transaction, error) {
	t.Type = models.TypeIncome
	var updated models.Transaction
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/income/%d", id), nil, t, &updated)
	return updated, err
}

// DeleteIncome removes an income record.
func (c *Client) DeleteIncome(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/income/%d", id), nil, nil, nil)
}

// Expenses lists all expense records.
func (c *Client) Expenses(ctx context.Context) ([]models.Transaction, error) {
	var expenses []models.Transaction
	err := c.do(ctx, http.MethodGet, "/expenses", nil, nil, &expenses)
	return expenses, err
}

// AddExpense creates an expense record.
func (c *Client) AddExpense(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	t.Type = models.TypeExpense
	var created models.Transaction
	err := c.do(ctx, http.MethodPost, "/expenses", nil, t, &created)
	return created, err
}

// UpdateExpense replaces an expense record.
func (c *Client) UpdateExpense(ctx context.Context, id int64, t models.Transaction) (models.Transaction, error) {
	t.Type = models.TypeExpense
	var updated models.Transaction
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/expenses/%d", id), nil, t, &updated)
	return updated, err
}

// DeleteExpense removes an expense record.
func (c *Client) DeleteExpense(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/expenses/%d", id), nil, nil, nil)
}

// Budgets lists the budgets of one month.
func (c *Client) Budgets(ctx context.Context, month types.Month) ([]models.Budget, error) {
	query := url.Values{"month": {month.String()}}
	var budgets []models.Budget
	err := c.do(ctx, http.MethodGet, "/budget", query, nil, &budgets)
	return budgets, err
}

// SaveBudget creates or updates the budget for the budget's category and
// month. The backend upserts on (category, month); there is no separate
// update endpoint.
func (c *Client) SaveBudget(ctx context.Context, budget models.Budget) (models.Budget, error) {
	var saved models.Budget
	err := c.do(ctx, http.MethodPost, "/budget", nil, budget, &saved)
	return saved, err
}

// Goals lists all savings goals.
func (c *Client) Goals(ctx context.Context) ([]models.SavingsGoal, error) {
	var goals []models.SavingsGoal
	err := c.do(ctx, http.MethodGet, "/goals", nil, nil, &goals)
	return goals, err
}

// SaveGoal creates or updates a savings goal. A zero ID creates.
func (c *Client) SaveGoal(ctx context.Context, goal models.SavingsGoal) (models.SavingsGoal, error) {
	var saved models.SavingsGoal
	err := c.do(ctx, http.MethodPost, "/goals", nil, goal, &saved)
	return saved, err
}

// DeleteGoal removes a savings goal.
func (c *Client) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/goals/"+id.String(), nil, nil, nil)
}

// Dashboard fetches the backend's precomputed dashboard payload.
func (c *Client) Dashboard(ctx context.Context) (models.DashboardSummary, error) {
	var summary models.DashboardSummary
	err := c.do(ctx, http.MethodGet, "/dashboard", nil, nil, &summary)
	return summary, err
}

// Filter searches transactions.
func (c *Client) Filter(ctx context.Context, req models.FilterRequest) ([]models.Transaction, error) {
	var matches []models.Transaction
	err := c.do(ctx, http.MethodPost, "/filter", nil, req, &matches)
	return matches, err
}

// DownloadIncomeExcel streams the income spreadsheet export.
func (c *Client) DownloadIncomeExcel(ctx context.Context) (io.ReadCloser, error) {
	return c.download(ctx, "/excel/download/income", nil)
}

// DownloadExpenseExcel streams the expense spreadsheet export.
func (c *Client) DownloadExpenseExcel(ctx context.Context) (io.ReadCloser, error) {
	return c.download(ctx, "/excel/download/expense", nil)
}

// EmailIncomeReport asks the backend to mail the income report.
func (c *Client) EmailIncomeReport(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/email/income-excel", nil, nil, nil)
}

// EmailExpenseReport asks the backend to mail the expense report.
func (c *Client) EmailExpenseReport(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/email/expense-excel", nil, nil, nil)
}

// AdminBackup streams a full data backup. Requires the admin role; regular
// users get ErrForbidden.
func (c *Client) AdminBackup(ctx context.Context) (io.ReadCloser, error) {
	return c.download(ctx, "/admin/backup", nil)
}

// Posts lists the community feed.
func (c *Client) Posts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := c.do(ctx, http.MethodGet, "/posts", nil, nil, &posts)
	return posts, err
}

// CreatePost publishes a post.
func (c *Client) CreatePost(ctx context.Context, content string) (models.Post, error) {
	var created models.Post
	err := c.do(ctx, http.MethodPost, "/posts", nil, models.Post{Content: content}, &created)
	return created, err
}

// AddComment replies to a post.
func (c *Client) AddComment(ctx context.Context, postID int64, content string) (models.Comment, error) {
	var created models.Comment
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/comments", postID), nil, models.Comment{Content: content}, &created)
	return created, err
}

// LikePost toggles a like on a post.
func (c *Client) LikePost(ctx context.Context, postID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/like", postID), nil, nil, nil)
}
