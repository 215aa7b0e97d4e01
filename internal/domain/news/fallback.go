package news

var fallbackItems = []Item{
	{Title: "Major Tech Breakthrough in AI Chips", Summary: "A new architecture promises 5x efficiency in large model inference.", Category: "Technology", Timestamp: "Just now", SourceName: "Tech Daily"},
	{Title: "Global Climate Summit Reaches Historical Accord", Summary: "World leaders agree on aggressive new carbon neutral targets for 2040.", Category: "World", Timestamp: "12m ago", SourceName: "World News"},
	{Title: "Market Volatility Decreases After Central Bank Update", Summary: "Stocks rally as investors process new economic guidance on interest rates.", Category: "Business", Timestamp: "45m ago", SourceName: "Financial Times"},
	{Title: "Discovery of Prehistoric Cave Art in Europe", Summary: "Archaeologists find perfectly preserved paintings dating back 30,000 years.", Category: "Science", Timestamp: "1h ago", SourceName: "Science Monitor"},
	{Title: "Championship Finals Set for Weekend Showdown", Summary: "The top two seeds secure their spots after thrilling semi-final victories.", Category: "Sports", Timestamp: "2h ago", SourceName: "Sports Central"},
	{Title: "New Study Links Sleep Quality to Heart Health", Summary: "Longitudinal research suggests consistent rest is vital for cardiovascular longevity.", Category: "Health", Timestamp: "3h ago", SourceName: "Health Report"},
}

// FallbackItems returns a fresh copy of the placeholder set shown when no real content is available.
func FallbackItems() []Item {
	return append([]Item(nil), fallbackItems...)
}
