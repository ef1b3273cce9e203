package jira

import "strings"

// Content is one node of an Atlassian Document Format tree, the rich
// text format Jira Cloud uses for worklog comments. The shape is
// self-referential: a leaf node of type "text" carries Text, every
// other node carries child nodes.
// See https://developer.atlassian.com/cloud/jira/platform/apis/document/structure/
type Content struct {
	Type    string    `json:"type"`
	Version int       `json:"version,omitempty"` // 1 on the root "doc" node
	Text    string    `json:"text,omitempty"`
	Content []Content `json:"content,omitempty"`
}

// flattenContent reduces an ADF tree to plain text, joining sibling
// fragments with "; ". A nil comment flattens to the empty string.
func flattenContent(c *Content) string {
	if c == nil {
		return ""
	}
	if c.Type == "text" {
		return c.Text
	}
	parts := make([]string, 0, len(c.Content))
	for i := range c.Content {
		parts = append(parts, flattenContent(&c.Content[i]))
	}
	return strings.Join(parts, "; ")
}

// textDoc wraps plain text in the minimal ADF document Jira accepts
// when creating a worklog.
func textDoc(text string) Content {
	return Content{
		Type:    "doc",
		Version: 1,
		Content: []Content{
			{
				Type:    "paragraph",
				Content: []Content{{Type: "text", Text: text}},
			},
		},
	}
}
