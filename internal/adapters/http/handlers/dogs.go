package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/dog-proxy/internal/adapters/http/dto"
	"github.com/jsamuelsen/dog-proxy/internal/app"
)

// DogHandler serves the dog image endpoints. It only maps results to
// responses; every failure goes through dto.HandleError.
type DogHandler struct {
	service *app.DogService
}

// NewDogHandler creates a new dog handler.
func NewDogHandler(service *app.DogService) *DogHandler {
	return &DogHandler{
		service: service,
	}
}

// List handles GET /list.
// Returns every breed mapped to its sub-breeds.
//
// @Summary List breeds
// @Tags dogs
// @Produce json
// @Success 200 {object} dto.DataResponse[map[string][]string]
// @Failure 500 {object} dto.ErrorResponse
// @Failure 504 {object} dto.ErrorResponse
// @Router /list [get]
func (h *DogHandler) List(c *gin.Context) {
	list, err := h.service.ListBreeds(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDataResponse(list.Breeds))
}

// Pics handles GET /pics/:breed, where breed may be "name/subbreed".
// Returns the image URLs for the breed.
//
// @Summary List breed images
// @Tags dogs
// @Produce json
// @Param breed path string true "Breed, optionally breed/subbreed"
// @Success 200 {object} dto.DataResponse[[]string]
// @Failure 404 {object} dto.ErrorResponse
// @Failure 504 {object} dto.ErrorResponse
// @Router /pics/{breed} [get]
func (h *DogHandler) Pics(c *gin.Context) {
	// Catch-all params keep their leading slash.
	breed := strings.TrimPrefix(c.Param("breed"), "/")

	pics, err := h.service.GetBreedPics(c.Request.Context(), breed)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDataResponse(pics.URLs))
}

// RegisterDogRoutes registers the dog routes on the given router group.
//   - GET /list
//   - GET /pics/*breed
func (h *DogHandler) RegisterDogRoutes(rg *gin.RouterGroup) {
	rg.GET("/list", h.List)
	rg.GET("/pics/*breed", h.Pics)
}
