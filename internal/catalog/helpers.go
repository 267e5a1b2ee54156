package catalog

// Catalog helper methods

// GetQuestion retrieves a question by ID
func (c *Catalog) GetQuestion(id string) (*Question, bool) {
	for _, q := range c.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return nil, false
}

// GetCategory retrieves a category by name
func (c *Catalog) GetCategory(name string) (*Category, bool) {
	for _, category := range c.Categories {
		if category.Name == name {
			return category, true
		}
	}
	return nil, false
}

// CategoryNames returns category names in declaration order
func (c *Catalog) CategoryNames() []string {
	names := make([]string, len(c.Categories))
	for i, category := range c.Categories {
		names[i] = category.Name
	}
	return names
}

// ListQuestionIDs returns question IDs in declaration order
func (c *Catalog) ListQuestionIDs() []string {
	ids := make([]string, len(c.Questions))
	for i, q := range c.Questions {
		ids[i] = q.ID
	}
	return ids
}

// Title returns the display title, falling back to the metadata name.
func (c *Catalog) Title() string {
	if c.Metadata == nil {
		return ""
	}
	if c.Metadata.Title != "" {
		return c.Metadata.Title
	}
	return c.Metadata.Name
}

// GetOption retrieves an option by its value token
func (q *Question) GetOption(value string) (*Option, bool) {
	for _, opt := range q.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return nil, false
}

// OptionValues returns the option tokens in declaration order
func (q *Question) OptionValues() []string {
	values := make([]string, len(q.Options))
	for i, opt := range q.Options {
		values[i] = opt.Value
	}
	return values
}

// IsScale returns true if this is a scale question
func (q *Question) IsScale() bool {
	return q.Kind == KindScale
}

// IsSingleChoice returns true if this is a single-choice question
func (q *Question) IsSingleChoice() bool {
	return q.Kind == KindSingleChoice
}

// IsRanking returns true if this is a ranking question
func (q *Question) IsRanking() bool {
	return q.Kind == KindRanking
}
