package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/library/internal/application/book"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	findByISBNUseCase *appbook.FindByISBNUseCase
	createBookUseCase *appbook.CreateBookUseCase
	updateBookUseCase *appbook.UpdateBookUseCase
	deleteBookUseCase *appbook.DeleteBookUseCase
	getBookUseCase    *appbook.GetBookUseCase
	listBooksUseCase  *appbook.ListBooksUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	findByISBNUseCase *appbook.FindByISBNUseCase,
	createBookUseCase *appbook.CreateBookUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	listBooksUseCase *appbook.ListBooksUseCase,
) *BookHandler {
	return &BookHandler{
		findByISBNUseCase: findByISBNUseCase,
		createBookUseCase: createBookUseCase,
		updateBookUseCase: updateBookUseCase,
		deleteBookUseCase: deleteBookUseCase,
		getBookUseCase:    getBookUseCase,
		listBooksUseCase:  listBooksUseCase,
	}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  可选等值过滤条件+分页查询图书
// @Tags         图书
// @Produce      json
// @Security     BasicAuth
// @Param        genre     query string false "体裁"
// @Param        author    query string false "作者"
// @Param        title     query string false "书名"
// @Param        publisher query string false "出版社"
// @Param        year      query string false "出版年份"
// @Param        isbn      query string false "ISBN"
// @Param        page      query int    false "页码"
// @Param        page_size query int    false "每页数量"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/books/ [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, apperrors.ErrInvalidParams.WithCause(err))
		return
	}

	result, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Filters: book.Filters{
			Genre:     req.Genre,
			Author:    req.Author,
			Image:     req.Image,
			Title:     req.Title,
			Subtitle:  req.Subtitle,
			Publisher: req.Publisher,
			Year:      req.Year,
			Pages:     req.Pages,
			ISBN:      req.ISBN,
		},
		Page:     req.Page,
		PageSize: req.PageSize,
		SortBy:   req.SortBy,
		Order:    req.Order,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, toBookResponses(result.Books), result.Total, result.Page, result.PageSize)
}

// BooksByPublisherGenreYear 出版社+体裁+年份组合查询
// @Summary      按出版社、体裁、年份查询图书
// @Tags         图书
// @Produce      json
// @Security     BasicAuth
// @Param        publisher query string false "出版社"
// @Param        genre     query string false "体裁"
// @Param        year      query string false "出版年份"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/books/byPublisherAndByGenreAndByYear [get]
func (h *BookHandler) BooksByPublisherGenreYear(c *gin.Context) {
	var req dto.BooksByPublisherGenreYearRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, apperrors.ErrInvalidParams.WithCause(err))
		return
	}

	result, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Filters: book.Filters{
			Publisher: req.Publisher,
			Genre:     req.Genre,
			Year:      req.Year,
		},
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, toBookResponses(result.Books), result.Total, result.Page, result.PageSize)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Security     BasicAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "Book Not Found"
// @Router       /api/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.getBookUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponse(result))
}

// FindByISBN 按ISBN查询图书
// @Summary      按ISBN查询图书
// @Description  本地命中返回200；未命中时从外部元数据源抓取并入库，返回201
// @Tags         图书
// @Produce      json
// @Security     BasicAuth
// @Param        isbn path string true "ISBN"
// @Success      200 {object} response.Response{data=dto.BookResponse} "本地命中"
// @Success      201 {object} response.Response{data=dto.BookResponse} "抓取并入库"
// @Failure      404 {object} response.Response "本地与外部源均无记录"
// @Failure      409 {object} response.Response "外部服务异常或记录不可读"
// @Router       /api/books/isbn/{isbn} [get]
func (h *BookHandler) FindByISBN(c *gin.Context) {
	isbn := c.Param("isbn")

	result, err := h.findByISBNUseCase.Execute(c.Request.Context(), isbn)
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.Created {
		response.Created(c, toBookResponse(result.Book))
		return
	}
	response.Success(c, toBookResponse(result.Book))
}

// CreateBook 创建图书
// @Summary      创建图书
// @Description  初始铺数据接口，不需要认证
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "Received Null Attributes"
// @Router       /api/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}

	result, err := h.createBookUseCase.Execute(c.Request.Context(), appbook.CreateBookRequest{
		Genre:     req.Genre,
		Author:    req.Author,
		Image:     req.Image,
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		Publisher: req.Publisher,
		Year:      req.Year,
		Pages:     req.Pages,
		ISBN:      req.ISBN,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toBookResponse(result))
}

// UpdateBook 更新图书
// @Summary      更新图书
// @Description  全量替换；请求体ID必须与路径ID一致
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        id      path int                   true "图书ID"
// @Param        request body dto.UpdateBookRequest true "完整图书信息"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "Received Null Attributes"
// @Failure      404 {object} response.Response "Book Not Found"
// @Failure      409 {object} response.Response "Book Id Mismatch"
// @Router       /api/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}

	result, err := h.updateBookUseCase.Execute(c.Request.Context(), id, appbook.UpdateBookRequest{
		ID:        req.ID,
		Genre:     req.Genre,
		Author:    req.Author,
		Image:     req.Image,
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		Publisher: req.Publisher,
		Year:      req.Year,
		Pages:     req.Pages,
		ISBN:      req.ISBN,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponse(result))
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Tags         图书
// @Produce      json
// @Security     BasicAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "Book Not Found"
// @Router       /api/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.deleteBookUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Greeting 问候接口
// @Summary      问候
// @Description  连通性演示接口，name缺省为World
// @Tags         图书
// @Produce      json
// @Param        name query string false "名字"
// @Success      200 {object} response.Response{data=dto.GreetingResponse}
// @Router       /api/books/greeting [get]
func (h *BookHandler) Greeting(c *gin.Context) {
	name := c.DefaultQuery("name", "World")
	response.Success(c, &dto.GreetingResponse{
		Message: fmt.Sprintf("Hello, %s!", name),
	})
}

// parseID 解析路径中的数字ID
func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperrors.ErrInvalidParams.WithCause(err)
	}
	return uint(id), nil
}
