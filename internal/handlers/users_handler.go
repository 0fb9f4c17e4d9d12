package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucUser "github.com/BruksfildServices01/barber-booking/internal/usecase/user"
)

// ======================================================
// HANDLER
// ======================================================

type UsersHandler struct {
	list     *ucUser.ListUsers
	register *ucUser.RegisterUser
	update   *ucUser.UpdateUser
	delete   *ucUser.DeleteUser
}

func NewUsersHandler(
	list *ucUser.ListUsers,
	register *ucUser.RegisterUser,
	update *ucUser.UpdateUser,
	delete *ucUser.DeleteUser,
) *UsersHandler {
	return &UsersHandler{
		list:     list,
		register: register,
		update:   update,
		delete:   delete,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type RegisterUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
	Role  string `json:"role" binding:"required"`
}

type UpdateUserRequest struct {
	Name          *string `json:"name"`
	Phone         *string `json:"phone"`
	Role          *string `json:"role"`
	BarberID      *string `json:"barberId"`
	BarberName    *string `json:"barberName"`
	IsSubscribed  *bool   `json:"isSubscribed"`
	StartTimePred *int    `json:"startTimePred"`
	EndTimePred   *int    `json:"endTimePred"`
}

// barberView is the public shape of a barber profile.
type barberView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	PhotoURL      string `json:"photoUrl"`
	StartTimePred *int   `json:"startTimePred,omitempty"`
	EndTimePred   *int   `json:"endTimePred,omitempty"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *UsersHandler) List(c *gin.Context) {
	users, err := h.list.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, users)
}

func (h *UsersHandler) ListBarbers(c *gin.Context) {
	users, err := h.list.Barbers(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out := make([]barberView, 0, len(users))
	for _, u := range users {
		out = append(out, toBarberView(u))
	}
	httpresp.List(c, out)
}

func (h *UsersHandler) Register(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	u, err := h.register.Execute(c.Request.Context(), ucUser.RegisterUserInput{
		Actor: middleware.PrincipalFrom(c),
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Role:  req.Role,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": profileView(u)})
}

func (h *UsersHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "")
		return
	}

	u, err := h.update.Execute(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), ucUser.UpdateUserInput{
		Name:          req.Name,
		Phone:         req.Phone,
		Role:          req.Role,
		BarberID:      req.BarberID,
		BarberName:    req.BarberName,
		IsSubscribed:  req.IsSubscribed,
		StartTimePred: req.StartTimePred,
		EndTimePred:   req.EndTimePred,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": profileView(u)})
}

func (h *UsersHandler) Delete(c *gin.Context) {
	if err := h.delete.Execute(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toBarberView(u models.User) barberView {
	name := u.BarberName
	if name == "" {
		name = u.Name
	}
	return barberView{
		ID:            u.ID,
		Name:          name,
		PhotoURL:      u.PhotoURL,
		StartTimePred: u.StartTimePred,
		EndTimePred:   u.EndTimePred,
	}
}
