package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/photo"
	ucUser "github.com/BruksfildServices01/barber-booking/internal/usecase/user"
)

const maxPhotoBytes = 5 << 20

type MeHandler struct {
	updateUser *ucUser.UpdateUser
	photos     *photo.Service
}

// NewMeHandler takes a nil photos service when uploads are not configured.
func NewMeHandler(updateUser *ucUser.UpdateUser, photos *photo.Service) *MeHandler {
	return &MeHandler{updateUser: updateUser, photos: photos}
}

type UpdateMeRequest struct {
	Name          *string `json:"name"`
	Phone         *string `json:"phone"`
	StartTimePred *int    `json:"startTimePred"`
	EndTimePred   *int    `json:"endTimePred"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": profileView(middleware.ProfileFrom(c))})
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "")
		return
	}

	actor := middleware.PrincipalFrom(c)
	u, err := h.updateUser.Execute(c.Request.Context(), actor, actor.ID, ucUser.UpdateUserInput{
		Name:          req.Name,
		Phone:         req.Phone,
		StartTimePred: req.StartTimePred,
		EndTimePred:   req.EndTimePred,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": profileView(u)})
}

// SetPhoto takes a multipart "photo" field.
func (h *MeHandler) SetPhoto(c *gin.Context) {
	if h.photos == nil {
		httperr.Write(c, http.StatusNotImplemented, "photos_disabled", "")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPhotoBytes)
	fh, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "")
		return
	}
	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "")
		return
	}
	defer f.Close()

	url, err := h.photos.SetProfilePhoto(c.Request.Context(), middleware.PrincipalFrom(c).ID, f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"photoUrl": url})
}
