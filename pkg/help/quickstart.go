package help

const QuickstartYAML = `# film-review-explorer Quick Start

input:
  format: "JSONL, one review object per line"
  columns: "website, review, rating_ratio, like_ratio (extra columns are kept)"
  paths: "files ending in .jsonl, or directories holding them"

commands:
  process: |
    fre process --input reviews/ --cn-sites douban,maoyan --output processed.jsonl --force

  process_filtered: |
    fre process -i reviews/ --cn-sites douban --filter "rating_level=Good (>=8/10) AND review_length>=20"

  process_and_store: |
    fre process -i reviews/ --cn-sites douban --db runs.db

  column_types: |
    fre types -i reviews/

  stats: |
    fre stats -i reviews/ --cn-sites douban --top 10

  stored_runs: |
    fre db runs --db runs.db
    fre db run --db runs.db <run_id>
    fre stats --db runs.db --run <run_id>

derived_columns:
  cleaned_review: "CN noise cleaning for CN sites, EN noise cleaning otherwise"
  review_length: "characters for CN sites, word tokens otherwise"
  rating_level: "Good (>=8/10) | Ok (4~8/10) | Bad (<=4/10) | null"
  like_level: "Mostly Agree (>80%) | Somewhat Agree (50%~80%) | Somewhat Disagree (20%~50%) | Mostly Disagree (<20%) | null"
  review: "with --strip-html, replaced by its text content before cleaning"
  language: "only with --detect-language; ISO 639-1 code or null"

filter_syntax:
  - "column            (value present and non-empty)"
  - "column=value, column!=value"
  - "column>n, column>=n, column<n, column<=n"
  - "join conditions with AND or OR (not both)"
  - "value null matches missing cells"

config_file: |
  # fre process --config pipeline.yaml
  inputs: [reviews/]
  cn_sites: [douban, maoyan]
  filter: "like_ratio>=0.5"
  output: processed.yaml
  export_format: yaml
  require: [website, review]

error_behavior:
  - "Missing or unsupported input paths: logged and skipped"
  - "Malformed JSON line: run fails naming file and line"
  - "Missing website or review: run fails naming the row"
  - "Missing or NaN ratios: level is null, not an error"
`
