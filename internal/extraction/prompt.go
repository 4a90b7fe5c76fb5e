package extraction

// schedulePrompt instructs the generative backend to read an annual event
// schedule and emit a JSON array of event records. Year disambiguation for
// documents that omit the year is delegated to the backend's own reasoning;
// the parser downstream trusts the returned dates verbatim.
const schedulePrompt = `この画像（またはPDF）は学校の年間行事予定表です。
ここから「日付（YYYY-MM-DD形式）」「行事名」「開始時刻（あれば）」「終了時刻（あれば）」を抽出し、
以下のJSON形式の配列で出力してください。

情報は可能な限り全て抽出してください。
年の記述がない場合は、現在の年度を文脈から推測してください。

出力フォーマット:
[
  { "date": "2024-04-10", "summary": "入学式", "startTime": "09:00", "endTime": "12:00" },
  ...
]

Timeは不明な場合はnullにしてください。
JSONのみを出力し、Markdownのコードブロック記号は含めないでください。`
