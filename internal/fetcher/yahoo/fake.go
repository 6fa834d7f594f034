package yahoo

// FakeBackend serves canned data in tests.
type FakeBackend struct {
	BaseQuote Quote
	Bars      []Bar
	Err       error
}

func (f *FakeBackend) Quote(symbol string) (*Quote, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	q := f.BaseQuote
	q.Symbol = symbol
	return &q, nil
}

func (f *FakeBackend) History(string, HistoryQuery) ([]Bar, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Bars, nil
}
