package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/SAP-F-2025/comprehension-service/internal/models"
	"github.com/xuri/excelize/v2"
)

// Table is a header plus rows of rendered cells, sorted by record id.
type Table struct {
	Header []string
	Rows   [][]string
}

func ParticipantTable(participants []*models.Participant) Table {
	t := Table{Header: []string{
		"id", "ip_address", "worker_id", "assignment_id", "get_args", "notes", "key", "study", "item_id",
		"ua_header", "screen_width", "screen_height", "start_time", "end_time",
		"birth_year", "gender", "native_english", "dyslexia", "adhd", "asd", "vision", "vision_reason",
		"post_test_purpose", "post_test_other",
	}}
	for _, p := range participants {
		var gender string
		if p.Gender != nil {
			gender = string(*p.Gender)
		}
		t.Rows = append(t.Rows, []string{
			uintCell(p.ID), p.IPAddress, p.WorkerID, p.AssignmentID, string(p.GetArgs), p.Notes, p.Key, p.Study, p.ItemID,
			p.UAHeader, intPtrCell(p.ScreenWidth), intPtrCell(p.ScreenHeight), timeCell(p.StartTime), timePtrCell(p.EndTime),
			intPtrCell(p.BirthYear), gender, boolPtrCell(p.NativeEnglish), boolPtrCell(p.Dyslexia), boolPtrCell(p.ADHD),
			boolPtrCell(p.ASD), strPtrCell(p.Vision), strPtrCell(p.VisionReason),
			strPtrCell(p.PostTestPurpose), strPtrCell(p.PostTestOther),
		})
	}
	return t
}

func CriticalTable(trials []*models.CriticalTrial) Table {
	t := Table{Header: []string{
		"id", "participant_id", "item_id", "item", "item_type", "trial_index", "condition",
		"first_mention", "recent_mention", "knowledge_cue", "start", "end", "correct_answer",
		"response", "is_correct", "is_start", "is_end", "reaction_time", "passage_reading_time",
	}}
	for _, c := range trials {
		t.Rows = append(t.Rows, []string{
			uintCell(c.ID), uintCell(c.ParticipantID), c.ItemID, strconv.Itoa(c.Item), c.ItemType,
			strconv.Itoa(c.TrialIndex), c.Condition, c.FirstMention, c.RecentMention, c.KnowledgeCue,
			c.Start, c.End, c.CorrectAnswer, c.Response, strconv.FormatBool(c.IsCorrect),
			strconv.FormatBool(c.IsStart), strconv.FormatBool(c.IsEnd),
			strconv.FormatInt(c.ReactionTime, 10), strconv.FormatInt(c.PassageReadingTime, 10),
		})
	}
	return t
}

func AttentionCheckTable(trials []*models.AttentionCheckTrial) Table {
	t := Table{Header: []string{
		"id", "participant_id", "item_id", "item", "item_type", "trial_index", "question_id",
		"correct_answer", "response", "is_correct", "reaction_time",
	}}
	for _, a := range trials {
		t.Rows = append(t.Rows, []string{
			uintCell(a.ID), uintCell(a.ParticipantID), a.ItemID, strconv.Itoa(a.Item), a.ItemType,
			strconv.Itoa(a.TrialIndex), a.QuestionID, a.CorrectAnswer, a.Response,
			strconv.FormatBool(a.IsCorrect), strconv.FormatInt(a.ReactionTime, 10),
		})
	}
	return t
}

func WriteCSV(w io.Writer, t Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writer.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return nil
}

// WriteXLSX writes t as the only sheet of a workbook.
func WriteXLSX(w io.Writer, t Table, sheetName string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name Excel sheet: %w", err)
	}

	for col, header := range t.Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("failed to write Excel header: %w", err)
		}
	}
	for r, row := range t.Rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("failed to write Excel row: %w", err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

func uintCell(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func timeCell(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func timePtrCell(t *time.Time) string {
	if t == nil {
		return ""
	}
	return timeCell(*t)
}

func intPtrCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func boolPtrCell(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}

func strPtrCell(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
