package summary

// summaryPromptTemplate asks for a bounded markdown TL;DR. The first verb
// receives the document content, the second the character budget.
const summaryPromptTemplate = `You are a helpful assistant specialized in summarizing documents.
Your task is to create a clear, concise TL;DR summary in markdown format.
Things to keep in mind while summarizing:
- titles of sections and sub-sections
- tags such as Generative AI, LLMs, etc.
- entities such as persons, organizations, processes, people, etc.
- the style such as the type, sentiment and writing style of the document
- the main findings and insights while preserving key information and main ideas
- ignore any irrelevant information such as cookie policies, privacy policies, HTTP errors, etc.

Document content:
%s

Generate a concise TL;DR summary having a maximum of %d characters of the key findings from the provided documents, highlighting the most significant insights and implications.
Return the document in markdown format regardless of the original format.
`

// contextualPromptTemplate situates one chunk within its document. The verbs
// receive the truncated document window, the chunk, and the character budget.
const contextualPromptTemplate = `You are a helpful assistant specialized in summarizing documents relative to a given chunk.
<document>
%s
</document>

Here is the chunk we want to situate within the whole document
<chunk>
%s
</chunk>

Please give a short succinct context of maximum %d characters to situate this chunk within the overall document for the purposes of improving search retrieval of the chunk. Answer only with the succinct context and nothing else.
`

// simplePromptTemplate is the instruction-style prompt used by the simple
// summarizer. The verbs receive the character budget and the content.
const simplePromptTemplate = `Below is an instruction that describes a task, paired with an input that provides further context. Write a response that appropriately completes the request.

### Instruction:
You are a helpful assistant specialized in summarizing documents for the purposes of improving semantic and keyword search retrieval.
Generate a concise TL;DR summary in plain text format having a maximum of %d characters of the key findings from the provided documents,
highlighting the most significant insights. Answer only with the succinct context and nothing else.

### Input:
%s

### Response:
`
