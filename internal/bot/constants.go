package bot

// Fixed catalog for the order flow.

const (
	startPhotoURL    = "https://i.pinimg.com/736x/dd/cb/03/ddcb0341971d4836da7d12c399149675.jpg"
	processingGIFURL = "https://i.pinimg.com/originals/fd/5b/d2/fd5bd28732e0345037d301274c8df692.gif"
	rejectedGIFURL   = "https://i.pinimg.com/originals/a5/75/0b/a5750babcf0f417f30e0b4773b29e376.gif"
	thankYouPhotoURL = "https://i.pinimg.com/736x/da/1f/3b/da1f3b1746d1d05cfa59f371d0310f8a.jpg"

	udidProfileURL = "https://udid.tech/download-profile"

	paymentCallbackPrefix = "payment_"
	fallbackCheckTimeURL  = "https://t.me"
	regionName            = "Cambodia"
)

var paymentPhotoURLs = map[int]string{
	4:  "https://i.pinimg.com/736x/37/62/f1/3762f112c8f2179a2663e997c1419619.jpg",
	7:  "https://i.pinimg.com/736x/14/70/c4/1470c436182cf4c4142bfa343b45c844.jpg",
	12: "https://i.pinimg.com/736x/6a/3d/98/6a3d98a08550c0d823623279e458411a.jpg",
	16: "https://i.pinimg.com/736x/b5/96/76/b5967687b83a2bc141c8735dc232ca5e.jpg",
}

var checkTimeURLs = map[int]string{
	4:  "https://time-3day.vercel.app/",
	7:  "https://www.nhoy.store",
	12: "https://www.pinterest.com/#shop",
	16: "https://www.irra.store",
}

func paymentPhotoFor(amount int) string {
	if url, ok := paymentPhotoURLs[amount]; ok {
		return url
	}
	return startPhotoURL
}

func checkTimeURLFor(amount int) string {
	if url, ok := checkTimeURLs[amount]; ok {
		return url
	}
	return fallbackCheckTimeURL
}
