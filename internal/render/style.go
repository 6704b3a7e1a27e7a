package render

// styleCSS is inlined into every rendered document so preview and print share
// one stylesheet. Section chrome follows the portal's box model: dark header
// bar with centered white text over a bordered light body.
const styleCSS = `
:root{--ink:#1c2530;--paper:#ffffff;--panel:#f6f8fa;--line:#c8d0d9;
--header:#20364b;--accent:#2563eb;--concern:#ea7317;--preserved:#16a34a;
--alert:#b91c1c;--muted:#6b7280;}
*{box-sizing:border-box;}
body{margin:0;background:#e8ebef;color:var(--ink);
font:13px/1.5 "Helvetica Neue",Arial,sans-serif;}
.page,.page-flow{background:var(--paper);margin:0 auto 14px;padding:26px 30px;
max-width:210mm;}
.page{width:210mm;min-height:297mm;break-after:page;page-break-after:always;}
.page:last-child{break-after:auto;page-break-after:auto;}
.page-header{display:flex;justify-content:space-between;align-items:baseline;
border-bottom:2px solid var(--header);padding-bottom:8px;margin-bottom:16px;}
.brand-mark{color:var(--accent);margin-right:6px;}
.brand-name{font-weight:700;font-size:15px;margin-right:8px;}
.brand-subtitle{color:var(--muted);font-size:12px;}
.page-number{color:var(--muted);font-size:11px;}
.rpt-section{margin:0 0 14px;border:1px solid var(--line);}
.rpt-section-header{background:var(--header);color:#fff;text-align:center;
font-weight:700;padding:6px 10px;letter-spacing:0.02em;}
summary.rpt-section-header{cursor:pointer;list-style:none;}
summary.rpt-section-header::-webkit-details-marker{display:none;}
.rpt-section-body{background:var(--panel);padding:10px 12px;}
.narrative p{margin:0 0 8px;}
.narrative h2{font-size:14px;margin:0 0 8px;}
.kv-table{width:100%;border-collapse:collapse;}
.kv-table th{width:34%;text-align:left;padding:4px 8px;color:var(--muted);
font-weight:600;border-bottom:1px solid var(--line);}
.kv-table td{padding:4px 8px;border-bottom:1px solid var(--line);}
.data-table,.narrative table{width:100%;border-collapse:collapse;font-size:12px;}
.data-table th,.narrative th{background:var(--header);color:#fff;
padding:5px 8px;border:1px solid var(--header);}
.data-table td,.narrative td{padding:5px 8px;border:1px solid var(--line);}
.data-table tr.stripe td{background:#eef1f5;}
.item-list{margin:4px 0;padding-left:20px;}
.score-bar{margin:6px 0 10px;}
.score-bar-label{font-weight:600;margin-bottom:4px;}
.bar-track{height:14px;background:#dde3ea;border:1px solid var(--line);}
.bar-fill{height:100%;background:var(--accent);}
.bar-ticks{display:flex;justify-content:space-between;color:var(--muted);
font-size:10px;margin-top:2px;}
.domain-card{border:1px solid var(--line);background:#fff;padding:8px 10px;
margin:0 0 8px;}
.domain-card-head{display:flex;align-items:center;gap:8px;margin-bottom:4px;}
.status-dot{width:10px;height:10px;border-radius:50%;display:inline-block;}
.status-concern .status-dot{background:var(--concern);}
.status-concern .bar-fill{background:var(--concern);}
.status-preserved .status-dot{background:var(--preserved);}
.status-preserved .bar-fill{background:var(--preserved);}
.domain-name{font-weight:700;}
.domain-percentile{margin-left:auto;color:var(--muted);}
.domain-desc{margin:4px 0 0;color:var(--muted);}
.response-card{border:1px solid var(--line);border-left-width:4px;
background:#fff;padding:8px 10px;margin:0 0 8px;}
.response-card-head{display:flex;justify-content:space-between;margin-bottom:4px;}
.question-code{font-weight:700;color:var(--muted);}
.score-chip{font-size:11px;padding:1px 8px;border-radius:10px;}
.score-positive{border-left-color:var(--preserved);}
.score-positive .score-chip{background:#dcfce7;color:#166534;}
.score-alert{border-left-color:var(--alert);}
.score-alert .score-chip{background:#fee2e2;color:var(--alert);}
.score-nodata{border-left-color:var(--muted);}
.score-nodata .score-chip{background:#e5e7eb;color:var(--muted);}
.question-text{margin:0 0 4px;font-weight:600;}
.response-text{margin:0;color:var(--ink);}
html,body,*{-webkit-print-color-adjust:exact !important;print-color-adjust:exact !important;}
@media print{body{background:#fff;}.page{margin:0;max-width:none;}}
`
