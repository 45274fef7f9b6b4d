package repositories

import "github.com/SscSPs/library_ledger_app/internal/utils/filtering"

// Column aliases used by the list queries: br = borrow_records, rl = reading_list_entries, b = books.

// bookTextFilters are the catalog fields every listing can search on.
func bookTextFilters() filtering.Table {
	return filtering.Table{
		{Param: "title", Column: "b.title", Kind: filtering.KindText, Op: filtering.OpContains},
		{Param: "author", Column: "b.author", Kind: filtering.KindText, Op: filtering.OpContains},
		{Param: "category", Column: "b.category", Kind: filtering.KindText, Op: filtering.OpContains},
		{Param: "publisher", Column: "b.publisher", Kind: filtering.KindText, Op: filtering.OpContains},
		{Param: "language", Column: "b.language", Kind: filtering.KindText, Op: filtering.OpContains},
	}
}

// BorrowRecordBook narrows borrow listings to one book, either from the query string or
// from a per-book route.
var BorrowRecordBook = filtering.Field{Param: "book_id", Column: "br.book_id", Kind: filtering.KindID, Op: filtering.OpEq}

// BorrowRecordFilters is the filter table accepted by borrow and return listings.
var BorrowRecordFilters = append(filtering.Table{
	{Param: "user_id", Column: "br.user_id", Kind: filtering.KindID, Op: filtering.OpEq},
	BorrowRecordBook,
	{Param: "borrow_date", Column: "br.borrow_date", Kind: filtering.KindDate, Op: filtering.OpOnOrAfter},
	{Param: "borrow_date_to", Column: "br.borrow_date", Kind: filtering.KindDate, Op: filtering.OpOnOrBefore},
	{Param: "due_date", Column: "br.due_date", Kind: filtering.KindDate, Op: filtering.OpOnOrAfter},
	{Param: "due_date_to", Column: "br.due_date", Kind: filtering.KindDate, Op: filtering.OpOnOrBefore},
	{Param: "returned_date", Column: "br.returned_date", Kind: filtering.KindDate, Op: filtering.OpOnOrAfter},
	{Param: "returned_date_to", Column: "br.returned_date", Kind: filtering.KindDate, Op: filtering.OpOnOrBefore},
}, bookTextFilters()...)

// ReadingListFilters is the filter table accepted by reading-list listings.
var ReadingListFilters = append(filtering.Table{
	{Param: "book_id", Column: "rl.book_id", Kind: filtering.KindID, Op: filtering.OpEq},
}, bookTextFilters()...)
