package http

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
)

const manifestDateFormat = "02.01.2006"

var manifestHeader = []string{
	"Code", "Recipient", "Phone", "Address", "Quantity",
	"Product", "Amount", "Date", "Map Link", "Notes",
}

// GetDispatchManifest handles GET /api/v1/settlements/dispatch-sessions/{id}/manifest -
// renders the courier hand-off sheet as CSV (default) or XLSX.
func (s *Server) GetDispatchManifest(ctx echo.Context) error {
	sessionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid session id")
	}

	query, err := queries.NewGetDispatchManifestQuery(sessionID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	manifest, err := s.getDispatchManifestHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	switch format := ctx.QueryParam("format"); format {
	case "", "csv":
		return writeManifestCSV(ctx, manifest)
	case "xlsx":
		return writeManifestXLSX(ctx, manifest)
	default:
		return badRequest(ctx, "unsupported format: "+format)
	}
}

func manifestCells(code string, row queries.ManifestRow) []string {
	return []string{
		code,
		row.RecipientName,
		row.RecipientPhone,
		row.RecipientAddress,
		strconv.Itoa(row.TotalQuantity),
		row.ItemsSummary,
		row.CODAmount.StringFixed(2),
		row.OrderDate.Format(manifestDateFormat),
		row.RecipientMapLink,
		row.RecipientNotes,
	}
}

func writeManifestCSV(ctx echo.Context, manifest queries.GetDispatchManifestQueryResponse) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(manifestHeader); err != nil {
		return errorResponse(ctx, err)
	}
	for _, row := range manifest.Rows {
		if err := w.Write(manifestCells(manifest.SessionCode, row)); err != nil {
			return errorResponse(ctx, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errorResponse(ctx, err)
	}

	ctx.Response().Header().Set(
		echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s.csv"`, manifest.SessionCode),
	)
	return ctx.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

func writeManifestXLSX(ctx echo.Context, manifest queries.GetDispatchManifestQueryResponse) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Manifest"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return errorResponse(ctx, err)
	}

	header := make([]any, len(manifestHeader))
	for i, h := range manifestHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return errorResponse(ctx, err)
	}

	for i, row := range manifest.Rows {
		cells := manifestCells(manifest.SessionCode, row)
		values := make([]any, len(cells))
		for j, c := range cells {
			values[j] = c
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errorResponse(ctx, err)
		}
		if err = f.SetSheetRow(sheet, cell, &values); err != nil {
			return errorResponse(ctx, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return errorResponse(ctx, err)
	}

	ctx.Response().Header().Set(
		echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s.xlsx"`, manifest.SessionCode),
	)
	return ctx.Blob(
		http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes(),
	)
}
