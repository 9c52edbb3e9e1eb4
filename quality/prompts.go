package quality

// qualityPromptTemplate is the fixed rubric sent to the model. The single
// %s verb receives the document content.
const qualityPromptTemplate = `You are an expert judge tasked with evaluating the quality of a given DOCUMENT. Your goal is to identify documents with substantive and valuable information.
Guidelines:
1.  Evaluate the DOCUMENT based on generally accepted facts and reliable information. The content should be accurate and trustworthy.
2.  The DOCUMENT must contain relevant, specific information related to a clear topic. It should not primarily consist of:
    *   Links, navigation menus, or boilerplate website elements (headers, footers, sidebars).
    *   Error messages (e.g., 404 Not Found, 503 Service Unavailable, access denied).
    *   Security block pages, CAPTCHAs, or login/registration forms.
    *   Pages dominated by advertisements, promotional content, or cookie consent banners with little to no original content.
    *   Placeholder text or content that is clearly auto-generated and lacks meaning.
3.  Check that the DOCUMENT doesn't oversimplify, misrepresent, or generalize information in a way that changes its meaning or accuracy. It should offer some depth or insight.
4.  The language should be coherent, well-structured, and understandable.

Analyze the text thoroughly and assign a quality score between 0.0 and 1.0, where:
- **0.0**: The DOCUMENT is completely irrelevant or unusable. It contains only noise, such as those listed in Guideline 2 (e.g., a security block page, a list of links, an error message, a page full of ads with no real content).
- **0.1 - 0.3**: The DOCUMENT has minimal relevance or utility. It might contain a small amount of potentially useful information but is heavily overshadowed by irrelevant content, is poorly written, or lacks any substantive insight. It may partially meet some guidelines but fails significantly on others.
- **0.4 - 0.7**: The DOCUMENT is partially relevant and useful. It contains some valuable information and generally follows the guidelines but may have noticeable flaws, such as some irrelevant sections, minor inaccuracies, or a lack of depth.
- **0.8 - 1.0**: The DOCUMENT is highly relevant, accurate, well-structured, and provides substantial, valuable information. It clearly follows all guidelines and represents a high-quality source.

It is crucial that you return only the score in the following JSON format:
{
    "score": <your score between 0.0 and 1.0>
}

DOCUMENT:
%s
`
