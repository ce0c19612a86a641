package models

const (
	SystemPrompt = "You are a helpful assistant. Answer the user's question using only the provided document context. If the context does not contain the answer, say so."

	AnswerPromptTemplate = `Context:
%s
Question: %s`

	// NoDocumentsAnswer is returned without calling the model when the
	// vector index holds no documents.
	NoDocumentsAnswer = "No documents have been ingested yet. Upload a document before asking a question."
)
