package llm

// Question is one interview question with its scoring rubric.
type Question struct {
	Topic    string
	Prompt   string
	Keywords []string
	Hint     string
}

// ExcelQuestions is ordered from basic to advanced.
var ExcelQuestions = []Question{
	{
		Topic:    "cell references",
		Prompt:   "What is the difference between a relative and an absolute cell reference, and how do you make a reference absolute?",
		Keywords: []string{"$", "absolute", "relative", "copy", "f4", "fill"},
		Hint:     "an absolute reference uses $ signs (for example $A$1) so it does not change when the formula is copied",
	},
	{
		Topic:    "lookup functions",
		Prompt:   "How would you look up a value from another table? Compare VLOOKUP with INDEX and MATCH.",
		Keywords: []string{"vlookup", "index", "match", "left", "column", "exact"},
		Hint:     "INDEX/MATCH can look to the left of the key column and does not break when columns are inserted",
	},
	{
		Topic:    "conditional aggregation",
		Prompt:   "How would you total sales for one region in a single month using a formula?",
		Keywords: []string{"sumifs", "criteria", "range", "countifs", "multiple", "condition"},
		Hint:     "SUMIFS takes a sum range followed by pairs of criteria ranges and criteria",
	},
	{
		Topic:    "pivot tables",
		Prompt:   "Explain how you would build a pivot table to summarize sales by region and product, and how you would keep it up to date.",
		Keywords: []string{"pivot", "rows", "columns", "values", "filter", "refresh", "table"},
		Hint:     "drag fields into Rows, Columns and Values, and use Refresh after the source data changes",
	},
	{
		Topic:    "dynamic arrays",
		Prompt:   "What are dynamic array functions such as FILTER, UNIQUE and XLOOKUP, and how do they change the way formulas return results?",
		Keywords: []string{"spill", "filter", "unique", "xlookup", "array", "sort"},
		Hint:     "dynamic array formulas spill their results into neighbouring cells automatically",
	},
	{
		Topic:    "VBA macros",
		Prompt:   "Describe how you would write a VBA macro that loops over the rows of a sheet and highlights rows where a value exceeds a threshold.",
		Keywords: []string{"vba", "macro", "sub", "loop", "for", "cells", "range", "interior"},
		Hint:     "a Sub with a For loop over Cells(i, col) can set Interior.Color on matching rows",
	},
}
