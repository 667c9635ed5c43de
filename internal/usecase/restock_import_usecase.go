package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"kiosk/internal/domain/model"
	repo "kiosk/internal/repository"

	"github.com/google/uuid"
)

type RestockImportUsecase struct {
	tx repo.TransactionManager
}

// DI
func NewRestockImportUsecase(tx repo.TransactionManager) *RestockImportUsecase {
	return &RestockImportUsecase{tx: tx}
}

type ImportInput struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

// 行単位のエラー/警告
type ImportIssue struct {
	Row     int    `json:"row"`
	Code    string `json:"code"`
	JANCode string `json:"jan_code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ImportOutput struct {
	CreatedCount int           `json:"created_count"`
	SkippedCount int           `json:"skipped_count"`
	Warnings     []ImportIssue `json:"warnings"`
}

// バッチ全体を棄却したときの構造化エラー。
// 形式エラー（400）も参照エラー（409）もこの型で返し、
// handlerが行エラー一覧ごとJSONにする。
type ImportError struct {
	Status       int
	Message      string
	Errors       []ImportIssue
	SkippedCount int
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("%d: %s (%d rows)", e.Status, e.Message, len(e.Errors))
}

// 列名ごとのエラーコード
const (
	issueMissingColumn    = "MISSING_COLUMN"
	issueBlankJANCode     = "BLANK_JAN_CODE"
	issueInvalidQuantity  = "INVALID_QUANTITY"
	issueInvalidUnitCost  = "INVALID_UNIT_COST"
	issueMalformedRow     = "MALFORMED_ROW"
	issueNegativeQuantity = "NEGATIVE_QUANTITY"
	issueUnknownProduct   = "UNKNOWN_PRODUCT"
	issueNameMismatch     = "NAME_MISMATCH"
)

// パース済みの1行。rowは元ファイルの行番号（ヘッダ行が1）。
type restockRow struct {
	row      int
	janCode  string
	quantity int64
	unitCost *int64
	name     string
	hasName  bool
}

// 入荷CSVの一括取り込み。段階ごとのall-or-nothing：
//
//	Phase 0: 形式（CSVか・ヘッダ・必須列）
//	Phase 1: 行の構文（空欄・数値でない）→ 1件でもあればバッチ全体を400で棄却
//	Phase 2: 意味（負数・未登録JAN）→ 1件でもあればバッチ全体を409で棄却
//	Phase 3: 警告（商品名の不一致）→ 取り込みは止めない
//	Phase 4: RESTOCKエントリを1トランザクションで一括追記
//
// 良い行だけ部分的に取り込むことはしない。アップロード者が「全部弾かれた」と
// 思っているバッチを黙って半分入れてしまうのが一番まずい。
func (u *RestockImportUsecase) ImportRestocks(ctx context.Context, in ImportInput) (ImportOutput, error) {
	// Phase 0: 形式チェック
	if !isCSVUpload(in.Filename, in.ContentType) {
		return ImportOutput{}, NewHTTPError(http.StatusUnsupportedMediaType, "unsupported_media_type")
	}

	reader := csv.NewReader(in.Reader)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return ImportOutput{}, NewHTTPError(http.StatusBadRequest, "missing_header")
	}
	if err != nil {
		return ImportOutput{}, NewHTTPError(http.StatusBadRequest, "malformed_csv")
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []ImportIssue
	janIdx, ok := cols["jan_code"]
	if !ok {
		missing = append(missing, ImportIssue{
			Row: 1, Code: issueMissingColumn, Field: "jan_code",
			Message: "required column jan_code is missing",
		})
	}
	qtyIdx, ok := cols["quantity"]
	if !ok {
		missing = append(missing, ImportIssue{
			Row: 1, Code: issueMissingColumn, Field: "quantity",
			Message: "required column quantity is missing",
		})
	}
	if len(missing) > 0 {
		return ImportOutput{}, &ImportError{
			Status:  http.StatusBadRequest,
			Message: "structural_errors",
			Errors:  missing,
		}
	}

	costIdx, hasCost := cols["unit_cost"]
	nameIdx, hasName := cols["name"]

	// Phase 1: 行の構文チェック（全行読み切ってから判定する）
	var rows []restockRow
	var structural []ImportIssue
	totalRows := 0
	line := 1 // ヘッダ行

	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		totalRows++
		if err != nil {
			structural = append(structural, ImportIssue{
				Row: line, Code: issueMalformedRow, Field: "",
				Message: "row could not be parsed as CSV",
			})
			continue
		}

		jan := strings.TrimSpace(field(rec, janIdx))
		rowOK := true

		if jan == "" {
			structural = append(structural, ImportIssue{
				Row: line, Code: issueBlankJANCode, Field: "jan_code",
				Message: "jan_code must not be blank",
			})
			rowOK = false
		}

		var qty int64
		qtyRaw := strings.TrimSpace(field(rec, qtyIdx))
		qty, err = strconv.ParseInt(qtyRaw, 10, 64)
		if err != nil {
			structural = append(structural, ImportIssue{
				Row: line, Code: issueInvalidQuantity, JANCode: jan, Field: "quantity",
				Message: fmt.Sprintf("quantity %q is not an integer", qtyRaw),
			})
			rowOK = false
		}

		var unitCost *int64
		if hasCost {
			costRaw := strings.TrimSpace(field(rec, costIdx))
			if costRaw != "" {
				cost, err := strconv.ParseInt(costRaw, 10, 64)
				if err != nil {
					structural = append(structural, ImportIssue{
						Row: line, Code: issueInvalidUnitCost, JANCode: jan, Field: "unit_cost",
						Message: fmt.Sprintf("unit_cost %q is not an integer", costRaw),
					})
					rowOK = false
				} else {
					unitCost = &cost
				}
			}
		}

		if !rowOK {
			continue
		}

		r := restockRow{row: line, janCode: jan, quantity: qty, unitCost: unitCost}
		if hasName {
			r.name = strings.TrimSpace(field(rec, nameIdx))
			r.hasName = r.name != ""
		}
		rows = append(rows, r)
	}

	if len(structural) > 0 {
		return ImportOutput{}, &ImportError{
			Status:       http.StatusBadRequest,
			Message:      "structural_errors",
			Errors:       structural,
			SkippedCount: totalRows,
		}
	}

	// Phase 2〜4は1トランザクション。JANの解決と一括追記を同じ
	// スナップショットで行う。
	batchID := uuid.NewString()
	var out ImportOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var semantic []ImportIssue
		warnings := []ImportIssue{}
		entries := make([]model.StockTransaction, 0, len(rows))

		for _, row := range rows {
			if row.quantity < 0 {
				semantic = append(semantic, ImportIssue{
					Row: row.row, Code: issueNegativeQuantity, JANCode: row.janCode, Field: "quantity",
					Message: fmt.Sprintf("quantity must be >= 0, got %d", row.quantity),
				})
				continue
			}

			p, err := r.Products().FindByJANCode(ctx, row.janCode)
			if err == repo.ErrNotFound {
				semantic = append(semantic, ImportIssue{
					Row: row.row, Code: issueUnknownProduct, JANCode: row.janCode, Field: "jan_code",
					Message: fmt.Sprintf("product %s is not registered", row.janCode),
				})
				continue
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			// Phase 3: 名前の食い違いは警告のみ
			if row.hasName && row.name != p.Name {
				warnings = append(warnings, ImportIssue{
					Row: row.row, Code: issueNameMismatch, JANCode: row.janCode, Field: "name",
					Message: fmt.Sprintf("name %q does not match registered name %q", row.name, p.Name),
				})
			}

			entries = append(entries, model.StockTransaction{
				ProductID:   p.ID,
				Type:        model.TxTypeRestock,
				Delta:       row.quantity,
				UnitCost:    row.unitCost,
				Description: fmt.Sprintf("restock import %s line %d", batchID, row.row),
			})
		}

		if len(semantic) > 0 {
			return &ImportError{
				Status:       http.StatusConflict,
				Message:      "semantic_errors",
				Errors:       semantic,
				SkippedCount: totalRows,
			}
		}

		// Phase 4: 一括追記
		if err := r.Ledger().CreateBulk(ctx, entries); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = ImportOutput{
			CreatedCount: len(entries),
			SkippedCount: 0,
			Warnings:     warnings,
		}
		return nil
	})
	if err != nil {
		return ImportOutput{}, err
	}
	return out, nil
}

func field(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return rec[idx]
}

// 拡張子かContent-TypeがCSVを名乗っているか
func isCSVUpload(filename string, contentType string) bool {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return true
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch mt {
	case "text/csv", "application/csv":
		return true
	}
	return false
}
