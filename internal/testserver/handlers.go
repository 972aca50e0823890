package testserver

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/moneydash/moneydash/internal/models"
	"github.com/moneydash/moneydash/internal/types"
)

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (s *Server) listCategories(c *gin.Context) {
	s.mu.Lock()
	categories := slices.Clone(s.categories)
	s.mu.Unlock()

	c.JSON(http.StatusOK, categories)
}

func (s *Server) createCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	s.mu.Lock()
	category.ID = s.id()
	s.categories = append(s.categories, category)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, category)
}

func (s *Server) updateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			category.ID = id
			s.categories[i] = category
			c.JSON(http.StatusOK, category)
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
}

func (s *Server) deleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	s.categories = slices.DeleteFunc(s.categories, func(cat models.Category) bool { return cat.ID == id })
	s.mu.Unlock()

	c.Status(http.StatusNoContent)
}

func (s *Server) listIncome(c *gin.Context) {
	s.mu.Lock()
	income := slices.Clone(s.income)
	s.mu.Unlock()

	c.JSON(http.StatusOK, income)
}

func (s *Server) addIncome(c *gin.Context) {
	s.addTransaction(c, &s.income)
}

func (s *Server) updateIncome(c *gin.Context) {
	s.updateTransaction(c, &s.income)
}

func (s *Server) deleteIncome(c *gin.Context) {
	s.deleteTransaction(c, &s.income)
}

func (s *Server) listExpenses(c *gin.Context) {
	s.mu.Lock()
	expenses := slices.Clone(s.expenses)
	s.mu.Unlock()

	c.JSON(http.StatusOK, expenses)
}

func (s *Server) addExpense(c *gin.Context) {
	s.addTransaction(c, &s.expenses)
}

func (s *Server) updateExpense(c *gin.Context) {
	s.updateTransaction(c, &s.expenses)
}

func (s *Server) deleteExpense(c *gin.Context) {
	s.deleteTransaction(c, &s.expenses)
}

func (s *Server) addTransaction(c *gin.Context, collection *[]models.Transaction) {
	var t models.Transaction
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	s.mu.Lock()
	t.ID = s.id()
	*collection = append(*collection, t)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, t)
}

func (s *Server) updateTransaction(c *gin.Context, collection *[]models.Transaction) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var t models.Transaction
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range *collection {
		if (*collection)[i].ID == id {
			t.ID = id
			(*collection)[i] = t
			c.JSON(http.StatusOK, t)
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
}

func (s *Server) deleteTransaction(c *gin.Context, collection *[]models.Transaction) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	*collection = slices.DeleteFunc(*collection, func(t models.Transaction) bool { return t.ID == id })
	s.mu.Unlock()

	c.Status(http.StatusNoContent)
}

func (s *Server) listBudgets(c *gin.Context) {
	month, err := types.ParseMonth(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be in YYYY-MM format"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := []models.Budget{}
	for _, b := range s.budgets {
		if b.Month.Equal(month) {
			result = append(result, s.deriveBudget(b))
		}
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) saveBudget(c *gin.Context) {
	var budget models.Budget
	if err := c.ShouldBindJSON(&budget); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// One budget per (category, month): POST upserts.
	for i := range s.budgets {
		if s.budgets[i].CategoryID == budget.CategoryID && s.budgets[i].Month.Equal(budget.Month) {
			s.budgets[i].BudgetAmount = budget.BudgetAmount
			c.JSON(http.StatusCreated, s.deriveBudget(s.budgets[i]))
			return
		}
	}

	budget.ID = uuid.New()
	s.budgets = append(s.budgets, budget)
	c.JSON(http.StatusCreated, s.deriveBudget(budget))
}

// deriveBudget fills the server-computed fields. Callers hold s.mu.
func (s *Server) deriveBudget(b models.Budget) models.Budget {
	spent := decimal.Zero
	for _, t := range s.expenses {
		if t.CategoryID == b.CategoryID && t.Date.Valid && b.Month.Contains(t.Date.Time) {
			spent = spent.Add(t.Amount.Decimal)
		}
	}

	b.SpentAmount = spent
	b.Remaining = b.BudgetAmount.Sub(spent)
	b.Status = "WITHIN"
	if spent.GreaterThan(b.BudgetAmount) {
		b.Status = "EXCEEDED"
	}

	for _, cat := range s.categories {
		if cat.ID == b.CategoryID {
			b.CategoryName = cat.Name
		}
	}

	return b
}

func (s *Server) listGoals(c *gin.Context) {
	s.mu.Lock()
	goals := slices.Clone(s.goals)
	s.mu.Unlock()

	c.JSON(http.StatusOK, goals)
}

func (s *Server) saveGoal(c *gin.Context) {
	var goal models.SavingsGoal
	if err := c.ShouldBindJSON(&goal); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if goal.ID != uuid.Nil {
		for i := range s.goals {
			if s.goals[i].ID == goal.ID {
				s.goals[i] = goal
				c.JSON(http.StatusCreated, goal)
				return
			}
		}
	}

	goal.ID = uuid.New()
	s.goals = append(s.goals, goal)
	c.JSON(http.StatusCreated, goal)
}

func (s *Server) deleteGoal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return
	}

	s.mu.Lock()
	s.goals = slices.DeleteFunc(s.goals, func(g models.SavingsGoal) bool { return g.ID == id })
	s.mu.Unlock()

	c.Status(http.StatusNoContent)
}

func (s *Server) dashboard(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	totalIncome := decimal.Zero
	for _, t := range s.income {
		totalIncome = totalIncome.Add(t.Amount.Decimal)
	}

	totalExpense := decimal.Zero
	for _, t := range s.expenses {
		totalExpense = totalExpense.Add(t.Amount.Decimal)
	}

	recent := append(slices.Clone(s.income), s.expenses...)
	slices.SortFunc(recent, func(a, b models.Transaction) int {
		return b.Date.Time.Compare(a.Date.Time)
	})
	if len(recent) > 10 {
		recent = recent[:10]
	}

	c.JSON(http.StatusOK, models.DashboardSummary{
		TotalIncome:        totalIncome,
		TotalExpense:       totalExpense,
		TotalBalance:       totalIncome.Sub(totalExpense),
		TrendDirection:     models.TrendFlat,
		RecentTransactions: recent,
	})
}

func (s *Server) filter(c *gin.Context) {
	var req models.FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	s.mu.Lock()
	source := s.expenses
	if req.Type == models.TypeIncome {
		source = s.income
	}
	matches := []models.Transaction{}
	for _, t := range source {
		if req.Keyword != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(req.Keyword)) {
			continue
		}
		if req.StartDate.Valid && t.Date.Valid && t.Date.Time.Before(req.StartDate.Time) {
			continue
		}
		if req.EndDate.Valid && t.Date.Valid && t.Date.Time.After(req.EndDate.Time) {
			continue
		}
		matches = append(matches, t)
	}
	s.mu.Unlock()

	desc := req.SortOrder == models.SortDesc
	slices.SortStableFunc(matches, func(a, b models.Transaction) int {
		var cmp int
		if req.SortField == "amount" {
			cmp = a.Amount.Cmp(b.Amount.Decimal)
		} else {
			cmp = a.Date.Time.Compare(b.Date.Time)
		}
		if desc {
			cmp = -cmp
		}
		return cmp
	})

	c.JSON(http.StatusOK, matches)
}

func (s *Server) downloadExcel(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="export.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", []byte("PK\x03\x04moneydash-export"))
}

func (s *Server) listPosts(c *gin.Context) {
	s.mu.Lock()
	posts := slices.Clone(s.posts)
	s.mu.Unlock()

	c.JSON(http.StatusOK, posts)
}

func (s *Server) createPost(c *gin.Context) {
	var post models.Post
	if err := c.ShouldBindJSON(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	s.mu.Lock()
	post.ID = s.id()
	post.UserID = s.user.ID
	post.UserName = s.user.FullName
	post.CreatedAt = time.Now().UTC()
	s.posts = append(s.posts, post)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, post)
}

func (s *Server) addComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var comment models.Comment
	if err := c.ShouldBindJSON(&comment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			comment.ID = s.id()
			comment.PostID = id
			comment.UserID = s.user.ID
			comment.UserName = s.user.FullName
			comment.CreatedAt = time.Now().UTC()
			s.posts[i].Comments = append(s.posts[i].Comments, comment)
			s.posts[i].CommentCount = len(s.posts[i].Comments)
			c.JSON(http.StatusCreated, comment)
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
}

func (s *Server) likePost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts[i].Likes++
			c.JSON(http.StatusOK, s.posts[i])
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
}
