package http

import (
	"net/http"
	"strconv"
	"strings"

	"artmarket/internal/entity"
	"artmarket/internal/usecase"
	"artmarket/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ArtworkHandler struct {
	artworkUseCase usecase.ArtworkUseCase
	logger         *logger.Logger
}

func NewArtworkHandler(artworkUseCase usecase.ArtworkUseCase, log *logger.Logger) *ArtworkHandler {
	return &ArtworkHandler{
		artworkUseCase: artworkUseCase,
		logger:         log,
	}
}

type UploadArtworkRequest struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description"`
	Price       string `form:"price" binding:"required"`
	Tags        string `form:"tags"`
}

// Upload godoc
// @Summary      Upload an artwork
// @Description  Create an artwork from multipart images plus title/description/price/tags. New artworks enter moderation as pending.
// @Tags         artworks
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title formData string true "Title"
// @Param        description formData string false "Description"
// @Param        price formData number true "Price"
// @Param        tags formData string false "Comma-separated tag names"
// @Param        images formData file true "Image files"
// @Success      201  {object}  entity.Artwork
// @Failure      400  {object}  map[string]string
// @Router       /artworks [post]
func (h *ArtworkHandler) Upload(c *gin.Context) {
	ownerID := c.GetString("user_id")

	var req UploadArtworkRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	price, err := strconv.ParseFloat(req.Price, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be a number"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse form"})
		return
	}
	files := form.File["images"]

	var tags []string
	if req.Tags != "" {
		tags = strings.Split(req.Tags, ",")
	}

	artwork, err := h.artworkUseCase.UploadArtwork(ownerID, req.Title, req.Description, price, tags, files)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, artwork)
}

// ListPublic godoc
// @Summary      List public artworks
// @Description  Published and sold artworks with images and tags, newest first.
// @Tags         artworks
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /artworks [get]
func (h *ArtworkHandler) ListPublic(c *gin.Context) {
	artworks, err := h.artworkUseCase.ListPublic()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"artworks": artworks, "count": len(artworks)})
}

// ListMine godoc
// @Summary      List my artworks
// @Tags         artworks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /artworks/mine [get]
func (h *ArtworkHandler) ListMine(c *gin.Context) {
	artworks, err := h.artworkUseCase.ListMine(c.GetString("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"artworks": artworks, "count": len(artworks)})
}

// GetDetail godoc
// @Summary      Get artwork detail
// @Tags         artworks
// @Produce      json
// @Param        id path string true "Artwork ID"
// @Success      200  {object}  entity.Artwork
// @Failure      404  {object}  map[string]string
// @Router       /artworks/{id} [get]
func (h *ArtworkHandler) GetDetail(c *gin.Context) {
	artwork, err := h.artworkUseCase.GetDetail(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, artwork)
}

// ListAll godoc
// @Summary      List all artworks
// @Description  Administrative listing without a status filter.
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/artworks [get]
func (h *ArtworkHandler) ListAll(c *gin.Context) {
	artworks, err := h.artworkUseCase.ListAll()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"artworks": artworks, "count": len(artworks)})
}

// ListDraft godoc
// @Summary      List draft artworks
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/artworks/draft [get]
func (h *ArtworkHandler) ListDraft(c *gin.Context) {
	artworks, err := h.artworkUseCase.ListDraft()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"artworks": artworks, "count": len(artworks)})
}

// ListPending godoc
// @Summary      List the moderation queue
// @Description  Pending artworks, artwork columns only.
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/artworks/pending [get]
func (h *ArtworkHandler) ListPending(c *gin.Context) {
	artworks, err := h.artworkUseCase.ListPending()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"artworks": artworks, "count": len(artworks)})
}

type ModerateRequest struct {
	Status string `json:"status" binding:"required"`
}

// Moderate godoc
// @Summary      Moderate an artwork
// @Description  Set the status to one of approved, rejected, published, draft. "sold" is not settable here.
// @Tags         moderation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Artwork ID"
// @Param        request body ModerateRequest true "New status"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/artworks/{id}/status [put]
func (h *ArtworkHandler) Moderate(c *gin.Context) {
	var req ModerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.artworkUseCase.Moderate(c.Param("id"), entity.ArtworkStatus(req.Status)); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}
