package driven

// URLOpener opens a link with the platform's default handler.
type URLOpener interface {
	Open(url string) error
}
