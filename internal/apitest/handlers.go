package apitest

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/saadjs/nutri-cli/internal/model"
)

func (s *Server) login(c *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(c.PostForm("username")))
	password := c.PostForm("password")

	s.mu.Lock()
	defer s.mu.Unlock()
	uid, ok := s.byEmail[email]
	if !ok || s.accounts[uid].password != password {
		detail(c, http.StatusUnauthorized, "Incorrect email or password")
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": s.issueLocked(uid), "token_type": "bearer"})
}

func (s *Server) register(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		FullName string `json:"full_name"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Email == "" || in.Password == "" {
		detail(c, http.StatusUnprocessableEntity, "email and password are required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[strings.ToLower(in.Email)]; exists {
		detail(c, http.StatusBadRequest, "Email already registered")
		return
	}
	c.JSON(http.StatusOK, s.addUserLocked(in.Email, in.Password, in.FullName, false))
}

func (s *Server) me(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.accounts[userID(c)].user)
}

func (s *Server) adminUsers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.accounts[userID(c)].user.IsSuperuser {
		detail(c, http.StatusForbidden, "The user doesn't have enough privileges")
		return
	}
	out := make([]model.User, 0, len(s.accounts))
	for _, acc := range s.accounts {
		out = append(out, acc.user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (s *Server) getProfile(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID(c)]
	if !ok {
		detail(c, http.StatusNotFound, "Profile not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) putProfile(c *gin.Context) {
	var p model.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := p.Validate(); err != nil {
		detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	uid := userID(c)
	if prev, ok := s.profiles[uid]; ok {
		p.ID = prev.ID
	} else {
		p.ID = s.id()
	}
	p.UserID = uid
	s.profiles[uid] = p
	c.JSON(http.StatusOK, p)
}

func (s *Server) addWeight(c *gin.Context) {
	var in struct {
		Weight float64 `json:"weight"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Weight <= 0 {
		detail(c, http.StatusUnprocessableEntity, "weight must be > 0")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	uid := userID(c)
	entry := model.WeightEntry{ID: s.id(), Weight: in.Weight, Date: s.tick()}
	s.weights[uid] = append(s.weights[uid], entry)
	if p, ok := s.profiles[uid]; ok {
		p.Weight = in.Weight
		s.profiles[uid] = p
	}
	c.JSON(http.StatusOK, entry)
}

func (s *Server) weightHistory(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]model.WeightEntry{}, s.weights[userID(c)]...)
	c.JSON(http.StatusOK, out)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		detail(c, http.StatusUnprocessableEntity, "invalid id")
		return 0, false
	}
	return id, true
}

func (s *Server) listRecipes(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	uid := userID(c)
	out := make([]model.Recipe, 0)
	for _, r := range s.recipes {
		if r.UserID == uid {
			out = append(out, r.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

// normalizeRecipe applies what the backend computes: ingredient ids and,
// when ingredients carry calories and no total was given, the total.
func (s *Server) normalizeRecipe(r *model.Recipe) {
	var sum float64
	for i := range r.Ingredients {
		if r.Ingredients[i].ID == 0 {
			r.Ingredients[i].ID = s.id()
		}
		sum += r.Ingredients[i].Calories
	}
	if r.Calories == 0 && sum > 0 {
		r.Calories = sum
	}
}

func (s *Server) createRecipe(c *gin.Context) {
	var r model.Recipe
	if err := c.ShouldBindJSON(&r); err != nil {
		detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := r.Validate(); err != nil {
		detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.id()
	r.UserID = userID(c)
	s.normalizeRecipe(&r)
	s.recipes[r.ID] = r
	c.JSON(http.StatusOK, r)
}

func (s *Server) ownedRecipe(c *gin.Context) (model.Recipe, bool) {
	id, ok := pathID(c)
	if !ok {
		return model.Recipe{}, false
	}
	r, found := s.recipes[id]
	if !found {
		detail(c, http.StatusNotFound, "Recipe not found")
		return model.Recipe{}, false
	}
	if r.UserID != userID(c) {
		detail(c, http.StatusForbidden, "Not authorized to access this recipe")
		return model.Recipe{}, false
	}
	return r, true
}

func (s *Server) getRecipe(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.ownedRecipe(c); ok {
		c.JSON(http.StatusOK, r)
	}
}

func (s *Server) updateRecipe(c *gin.Context) {
	var in model.Recipe
	if err := c.ShouldBindJSON(&in); err != nil {
		detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := in.Validate(); err != nil {
		detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.ownedRecipe(c)
	if !ok {
		return
	}
	in.ID = prev.ID
	in.UserID = prev.UserID
	s.normalizeRecipe(&in)
	s.recipes[in.ID] = in
	c.JSON(http.StatusOK, in)
}

func (s *Server) deleteRecipe(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.ownedRecipe(c)
	if !ok {
		return
	}
	delete(s.recipes, r.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted"})
}

func (s *Server) listShopping(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	uid := userID(c)
	out := make([]model.ShoppingList, 0)
	for id, l := range s.lists {
		if s.owners[id] == uid {
			out = append(out, l.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	c.JSON(http.StatusOK, out)
}

func (s *Server) createListLocked(uid int64, title string, items []string) model.ShoppingList {
	if strings.TrimSpace(title) == "" {
		title = "Minha Lista"
	}
	l := &model.ShoppingList{ID: s.id(), Title: title, CreatedAt: s.tick(), Items: []model.ShoppingItem{}}
	for _, name := range items {
		l.Items = append(l.Items, model.ShoppingItem{ID: s.id(), ListID: l.ID, Name: name})
	}
	s.lists[l.ID] = l
	s.owners[l.ID] = uid
	return l.Clone()
}

func (s *Server) createShopping(c *gin.Context) {
	var in struct {
		Title string `json:"title"`
		Items []struct {
			Name string `json:"name"`
		} `json:"items"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	names := make([]string, 0, len(in.Items))
	for _, it := range in.Items {
		names = append(names, it.Name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.createListLocked(userID(c), in.Title, names))
}

func (s *Server) ownedList(c *gin.Context) (*model.ShoppingList, bool) {
	id, ok := pathID(c)
	if !ok {
		return nil, false
	}
	l, found := s.lists[id]
	if !found || s.owners[id] != userID(c) {
		detail(c, http.StatusNotFound, "Lista não encontrada")
		return nil, false
	}
	return l, true
}

func (s *Server) deleteShopping(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.ownedList(c)
	if !ok {
		return
	}
	delete(s.lists, l.ID)
	delete(s.owners, l.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Lista deletada"})
}

func (s *Server) addShoppingItem(c *gin.Context) {
	var in struct {
		Name    string `json:"name"`
		Checked bool   `json:"checked"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Name) == "" {
		detail(c, http.StatusUnprocessableEntity, "name is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.ownedList(c)
	if !ok {
		return
	}
	item := model.ShoppingItem{ID: s.id(), ListID: l.ID, Name: in.Name, Checked: in.Checked}
	l.Items = append(l.Items, item)
	c.JSON(http.StatusOK, item)
}

// ownedItem finds an item on one of the caller's lists.
func (s *Server) ownedItem(c *gin.Context) (*model.ShoppingList, int, bool) {
	id, ok := pathID(c)
	if !ok {
		return nil, 0, false
	}
	uid := userID(c)
	for listID, l := range s.lists {
		if s.owners[listID] != uid {
			continue
		}
		for i := range l.Items {
			if l.Items[i].ID == id {
				return l, i, true
			}
		}
	}
	detail(c, http.StatusNotFound, "Item não encontrado")
	return nil, 0, false
}

func (s *Server) toggleShoppingItem(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, i, ok := s.ownedItem(c)
	if !ok {
		return
	}
	l.Items[i].Checked = !l.Items[i].Checked
	c.JSON(http.StatusOK, l.Items[i])
}

func (s *Server) deleteShoppingItem(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, i, ok := s.ownedItem(c)
	if !ok {
		return
	}
	l.Items = append(l.Items[:i], l.Items[i+1:]...)
	c.JSON(http.StatusOK, gin.H{"message": "Item deletado"})
}
