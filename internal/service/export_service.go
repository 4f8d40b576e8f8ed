package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dushixiang/pipvault/pkg/stats"
	"github.com/gocarina/gocsv"
	"go.uber.org/zap"
)

// ExportService 导出 CSV 备份
type ExportService struct {
	logger       *zap.Logger
	tradeService *TradeService
}

func NewExportService(logger *zap.Logger, tradeService *TradeService) *ExportService {
	return &ExportService{
		logger:       logger,
		tradeService: tradeService,
	}
}

// DecimalComma 小数点写成逗号，分号分隔时表格软件可以直接识别
type DecimalComma float64

func (d DecimalComma) MarshalCSV() (string, error) {
	return strings.Replace(strconv.FormatFloat(float64(d), 'f', -1, 64), ".", ",", 1), nil
}

type exportRow struct {
	Date       string       `csv:"Date"`
	Pair       string       `csv:"Pair"`
	Direction  string       `csv:"Direction"`
	EntryPrice DecimalComma `csv:"Entry Price"`
	StopLoss   DecimalComma `csv:"Stop Loss"`
	TakeProfit DecimalComma `csv:"Take Profit"`
	Pnl        DecimalComma `csv:"PnL (Pips)"`
	RRRatio    DecimalComma `csv:"R:R Ratio"`
	Setup      string       `csv:"Setup"`
	Emotion    string       `csv:"Emotion"`
	ChartURL   string       `csv:"Chart URL"`
	AssetClass string       `csv:"Asset Class"`
	Comment    string       `csv:"Comment"`
}

// Filename PipVault_Backup_2024-03-01.csv
func (s *ExportService) Filename(now time.Time) string {
	return fmt.Sprintf("PipVault_Backup_%s.csv", now.Format("2006-01-02"))
}

// Export 按开仓时间倒序写出全部交易
func (s *ExportService) Export(ctx context.Context, userId string, w io.Writer) (int, error) {
	trades, err := s.tradeService.List(ctx, userId, stats.Filter{})
	if err != nil {
		return 0, err
	}

	rows := make([]*exportRow, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, &exportRow{
			Date:       t.Date.UTC().Format(time.RFC3339),
			Pair:       t.Pair,
			Direction:  t.Direction,
			EntryPrice: DecimalComma(t.EntryPrice),
			StopLoss:   DecimalComma(t.StopLoss),
			TakeProfit: DecimalComma(t.TakeProfit),
			Pnl:        DecimalComma(t.Pnl),
			RRRatio:    DecimalComma(t.RRRatio),
			Setup:      t.Setup,
			Emotion:    t.Emotion,
			ChartURL:   t.ChartURL,
			AssetClass: t.AssetClass,
			Comment:    t.Comment,
		})
	}

	writer := csv.NewWriter(w)
	writer.Comma = ';'
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(writer)); err != nil {
		return 0, err
	}
	s.logger.Debug("trades exported", zap.String("user_id", userId), zap.Int("rows", len(rows)))
	return len(rows), nil
}
