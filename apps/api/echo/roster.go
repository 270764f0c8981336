package echoapi

import (
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/vidyalabs/vidya/core/ingest"
	"github.com/vidyalabs/vidya/core/roster"
	"github.com/vidyalabs/vidya/storage/spreadsheet"
)

type rosterApi struct {
	importer *ingest.Importer
}

func registerRosterAPI(g *echo.Group, importer *ingest.Importer) {
	api := rosterApi{importer: importer}

	rg := g.Group("/rosters")
	rg.POST("/preview", api.preview)
	rg.POST("/commit", api.commit)
}

// Handlers

// preview parses the uploaded sheet and returns the extraction result
// without touching the store.
func (api *rosterApi) preview(ctx echo.Context) error {
	res, err := api.parseUpload(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}

// commit parses the uploaded sheet and reconciles it into the store.
// An optional "department" form field overrides the sheet's own.
func (api *rosterApi) commit(ctx echo.Context) error {
	res, err := api.parseUpload(ctx)
	if err != nil {
		return err
	}

	summary, err := api.importer.Commit(ctx.Request().Context(), res, ctx.FormValue("department"))
	if err != nil {
		if errors.Cause(err) == ingest.ErrNoTimeAnchor {
			// earlier stages are committed; report what landed
			return ctx.JSON(http.StatusUnprocessableEntity, echo.Map{
				"error":   err.Error(),
				"summary": summary,
			})
		}
		return errors.Wrap(err, "committing roster")
	}
	return ctx.JSON(http.StatusOK, summary)
}

func (api *rosterApi) parseUpload(ctx echo.Context) (*roster.ParseResult, error) {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return nil, errMissingFile
	}
	src, err := fh.Open()
	if err != nil {
		return nil, errUnreadableFile
	}
	defer src.Close()

	grid, err := spreadsheet.Read(src, filepath.Ext(fh.Filename))
	if err != nil {
		if errors.Cause(err) == spreadsheet.ErrUnsupportedFormat {
			return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return nil, errUnreadableFile
	}

	return api.importer.Preview(grid, fh.Filename)
}
