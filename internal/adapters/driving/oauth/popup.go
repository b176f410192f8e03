package oauth

import (
	"bytes"
	"html/template"
	"io"

	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
)

// PopupMessage is posted to window.opener by the popup page.
type PopupMessage struct {
	Type   string `json:"type"`
	UserID string `json:"user_id,omitempty"`
	OrgID  string `json:"org_id,omitempty"`
	Error  string `json:"error,omitempty"`
}

// SuccessMessage reports a stored credential for scope.
func SuccessMessage(scope domain.Scope) PopupMessage {
	return PopupMessage{
		Type:   string(scope.Provider) + "-auth-success",
		UserID: scope.UserID,
		OrgID:  scope.OrgID,
	}
}

// ErrorMessage reports a failed authorization.
func ErrorMessage(provider domain.ProviderType, reason string) PopupMessage {
	return PopupMessage{
		Type:  string(provider) + "-auth-error",
		Error: reason,
	}
}

// Popup is the data rendered into the popup page.
type Popup struct {
	Title   string
	Detail  string
	Message PopupMessage
	// TargetOrigin restricts which opener may receive the message.
	// Empty means any origin.
	TargetOrigin string
}

// NewPopup builds the page for msg.
func NewPopup(msg PopupMessage, targetOrigin string) Popup {
	p := Popup{Message: msg, TargetOrigin: targetOrigin}
	if msg.Error == "" {
		p.Title = "Authorization successful!"
		p.Detail = "You can close this window and return to the application."
	} else {
		p.Title = "Authorization failed"
		p.Detail = msg.Error
	}
	if p.TargetOrigin == "" {
		p.TargetOrigin = "*"
	}
	return p
}

// Render writes the popup page to w. Every value is escaped for the HTML or
// script context it lands in.
func (p Popup) Render(w io.Writer) error {
	return popupTemplate.Execute(w, p)
}

// HTML renders the popup page to a byte slice.
func (p Popup) HTML() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

//nolint:misspell // CSS properties use American spelling
var popupTemplate = template.Must(template.New("popup").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Sercha - OAuth Callback</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            display: flex;
            justify-content: center;
            align-items: center;
            height: 100vh;
            margin: 0;
            background: #FAFAFA;
        }
        .container {
            text-align: center;
            background: white;
            padding: 48px 64px;
            border-radius: 16px;
            border: 1px solid #C7C8CC;
            box-shadow: 0 4px 24px rgba(0,0,0,0.08);
        }
        h1 {
            color: #333F50;
            margin: 0 0 8px 0;
            font-size: 24px;
            font-weight: 600;
        }
        p {
            color: #7B8088;
            margin: 0;
            font-size: 16px;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>{{.Title}}</h1>
        <p>{{.Detail}}</p>
    </div>
    <script>
        (function () {
            var message = {{.Message}};
            if (window.opener) {
                window.opener.postMessage(message, {{.TargetOrigin}});
            }
            window.close();
        })();
    </script>
</body>
</html>
`))
