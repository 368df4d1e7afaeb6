package internal

const (
	COOKIE_ACCESS_TOKEN_NAME = "relief_access_token"
	COOKIE_REDIRECT_NAME     = "relief_redirect"
	COOKIE_LANG_NAME         = "relief_lang"
)
