package smoke

import (
	"fmt"
	"io"
	"net/http"
)

func get(path string) Step {
	return Step{Method: http.MethodGet, Path: path}
}

func post(path string, body map[string]any) Step {
	return Step{Method: http.MethodPost, Path: path, Body: body}
}

func reportScreenshot(w io.Writer, result map[string]any) {
	if image, ok := result["image"].(string); ok && image != "" {
		fmt.Fprintf(w, "       Screenshot captured: %d bytes (base64)\n", len(image))
	}
}

func screenshot(path string) Step {
	s := get(path)
	s.Report = reportScreenshot
	return s
}

// Suites returns the Word, Excel and PowerPoint suites.
func Suites() []Suite {
	return []Suite{Word(), Excel(), PowerPoint()}
}

func Word() Suite {
	return Suite{Title: "Word", Sections: []Section{
		{"Basic Operations", []Step{
			post("/word/launch", nil),
			post("/word/create", nil),
		}},
		{"Write and Read", []Step{
			post("/word/write", map[string]any{"text": "Hello World! This is a test document.\n\n"}),
			get("/word/read"),
		}},
		{"Font Settings", []Step{
			post("/word/write", map[string]any{"text": "Bold and Red Text\n"}),
			post("/word/set_font", map[string]any{"font_name": "Arial", "font_size": 16, "bold": true, "color": "#FF0000"}),
		}},
		{"Paragraph Formatting", []Step{
			post("/word/write", map[string]any{"text": "\nCentered paragraph with double spacing.\n"}),
			post("/word/set_paragraph", map[string]any{"alignment": "center", "line_spacing": 2.0}),
		}},
		{"Hyperlink", []Step{
			post("/word/add_hyperlink", map[string]any{
				"url":          "https://www.google.com",
				"display_text": "Visit Google",
				"tooltip":      "Click to visit Google",
			}),
		}},
		{"Insert Break", []Step{
			post("/word/insert_break", map[string]any{"type": "line"}),
			post("/word/write", map[string]any{"text": "\nAfter line break.\n"}),
		}},
		{"Table", []Step{
			post("/word/add_table", map[string]any{
				"rows": 3,
				"cols": 3,
				"values": [][]any{
					{"Name", "Age", "City"},
					{"Alice", "25", "Seoul"},
					{"Bob", "30", "Busan"},
				},
			}),
		}},
		{"Find and Replace", []Step{
			post("/word/find_replace", map[string]any{"find": "Hello", "replace": "Hi", "replace_all": true}),
		}},
		{"Style", []Step{
			post("/word/write", map[string]any{"text": "\n\nThis should be a heading\n"}),
			post("/word/set_style", map[string]any{"style": "Heading 1"}),
		}},
		{"Selection", []Step{
			post("/word/select_all", nil),
			get("/word/get_selection"),
		}},
		{"Screenshot", []Step{
			screenshot("/word/screenshot"),
		}},
		{"Close", []Step{
			post("/word/close", map[string]any{"save": false}),
		}},
	}}
}

func Excel() Suite {
	readRange := post("/excel/read_range", map[string]any{"range": "A1:C4"})
	readRange.Report = func(w io.Writer, result map[string]any) {
		fmt.Fprintf(w, "       Values: %v\n", result["values"])
	}

	return Suite{Title: "Excel", Sections: []Section{
		{"Basic Operations", []Step{
			post("/excel/launch", nil),
			post("/excel/create", nil),
		}},
		{"Write/Read Cell", []Step{
			post("/excel/write_cell", map[string]any{"cell": "A1", "value": "Product"}),
			post("/excel/write_cell", map[string]any{"cell": "B1", "value": "Price"}),
			post("/excel/write_cell", map[string]any{"cell": "C1", "value": "Quantity"}),
			post("/excel/read_cell", map[string]any{"cell": "A1"}),
		}},
		{"Write/Read Range", []Step{
			post("/excel/write_range", map[string]any{
				"start_cell": "A2",
				"values": [][]any{
					{"Apple", 100, 10},
					{"Banana", 50, 20},
					{"Orange", 75, 15},
				},
			}),
			readRange,
		}},
		{"Formula", []Step{
			post("/excel/write_cell", map[string]any{"cell": "D1", "value": "Total"}),
			post("/excel/set_formula", map[string]any{"cell": "D2", "formula": "=B2*C2"}),
			post("/excel/set_formula", map[string]any{"cell": "D3", "formula": "=B3*C3"}),
			post("/excel/set_formula", map[string]any{"cell": "D4", "formula": "=B4*C4"}),
			post("/excel/set_formula", map[string]any{"cell": "D5", "formula": "=SUM(D2:D4)"}),
			post("/excel/read_cell", map[string]any{"cell": "D5"}),
		}},
		{"Font Settings", []Step{
			post("/excel/set_font", map[string]any{"range": "A1:D1", "font_name": "Arial", "font_size": 14, "bold": true, "color": "#0000FF"}),
		}},
		{"Alignment", []Step{
			post("/excel/set_alignment", map[string]any{"range": "A1:D1", "horizontal": "center", "vertical": "center"}),
		}},
		{"Column Width", []Step{
			post("/excel/set_column_width", map[string]any{"column": "A", "auto_fit": true}),
			post("/excel/set_column_width", map[string]any{"column": "B", "width": 15}),
		}},
		{"Row Height", []Step{
			post("/excel/set_row_height", map[string]any{"row": 1, "height": 25}),
		}},
		{"Fill Color", []Step{
			post("/excel/set_fill", map[string]any{"range": "A1:D1", "color": "#FFFF00"}),
		}},
		{"Border", []Step{
			post("/excel/set_border", map[string]any{"range": "A1:D5", "style": "thin", "edges": "all"}),
		}},
		{"Number Format", []Step{
			post("/excel/set_number_format", map[string]any{"range": "B2:B4", "format": "#,##0"}),
			post("/excel/set_number_format", map[string]any{"range": "D2:D5", "format": "#,##0"}),
		}},
		{"Merge Cells", []Step{
			post("/excel/write_cell", map[string]any{"cell": "A7", "value": "Merged Header"}),
			post("/excel/merge_cells", map[string]any{"range": "A7:D7"}),
		}},
		{"Sheet Operations", []Step{
			get("/excel/get_sheets"),
			post("/excel/add_sheet", map[string]any{"name": "TestSheet"}),
			post("/excel/rename_sheet", map[string]any{"old_name": "TestSheet", "new_name": "RenamedSheet"}),
			get("/excel/get_sheets"),
			post("/excel/delete_sheet", map[string]any{"name": "RenamedSheet"}),
		}},
		{"Insert/Delete Row/Column", []Step{
			post("/excel/insert_row", map[string]any{"row": 2, "count": 1}),
			post("/excel/insert_column", map[string]any{"column": "A", "count": 1}),
			post("/excel/delete_row", map[string]any{"row": 2, "count": 1}),
			post("/excel/delete_column", map[string]any{"column": "A", "count": 1}),
		}},
		{"Auto Filter", []Step{
			post("/excel/auto_filter", map[string]any{"range": "A1:D5"}),
			post("/excel/auto_filter", map[string]any{"remove": true}),
		}},
		{"Freeze Panes", []Step{
			post("/excel/freeze_panes", map[string]any{"cell": "A2"}),
			post("/excel/freeze_panes", map[string]any{"unfreeze": true}),
		}},
		{"Screenshot", []Step{
			screenshot("/excel/screenshot"),
		}},
		{"Close", []Step{
			post("/excel/close", map[string]any{"save": false}),
		}},
	}}
}

func PowerPoint() Suite {
	readSlide := post("/powerpoint/read_slide", map[string]any{"slide": 1})
	readSlide.Report = func(w io.Writer, result map[string]any) {
		shapes, _ := result["shapes"].([]any)
		fmt.Fprintf(w, "       Shapes: %d\n", len(shapes))
	}

	return Suite{Title: "PowerPoint", Sections: []Section{
		{"Basic Operations", []Step{
			post("/powerpoint/launch", nil),
			post("/powerpoint/create", nil),
		}},
		{"Add Slides", []Step{
			post("/powerpoint/add_slide", map[string]any{"layout": 1}),
			post("/powerpoint/add_slide", map[string]any{"layout": 2}),
			get("/powerpoint/get_slide_count"),
		}},
		{"Write Text", []Step{
			post("/powerpoint/write_text", map[string]any{"slide": 1, "shape": 1, "text": "Presentation Title"}),
			post("/powerpoint/write_text", map[string]any{"slide": 1, "shape": 2, "text": "Subtitle goes here"}),
		}},
		{"Add Textbox", []Step{
			post("/powerpoint/add_textbox", map[string]any{
				"slide":  2,
				"text":   "Custom textbox content",
				"left":   100,
				"top":    300,
				"width":  400,
				"height": 50,
			}),
		}},
		{"Set Font", []Step{
			post("/powerpoint/set_font", map[string]any{
				"slide":     1,
				"shape":     1,
				"font_name": "Arial",
				"font_size": 44,
				"bold":      true,
				"color":     "#0066CC",
			}),
		}},
		{"Read Slide", []Step{
			readSlide,
		}},
		{"Set Background", []Step{
			post("/powerpoint/set_background", map[string]any{"slide": 2, "color": "#E0E0E0"}),
		}},
		{"Add Animation", []Step{
			post("/powerpoint/add_animation", map[string]any{"slide": 1, "shape": 1, "effect": "fade", "trigger": "on_click"}),
		}},
		{"Screenshot", []Step{
			screenshot("/powerpoint/screenshot"),
		}},
		{"Close", []Step{
			post("/powerpoint/close", map[string]any{"save": false}),
		}},
	}}
}
