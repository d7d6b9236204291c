package pdf

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: 'Helvetica Neue', Arial, sans-serif; color: #1f2933; margin: 0; }
  .header { display: flex; justify-content: space-between; align-items: baseline; border-bottom: 2px solid #1f2933; padding-bottom: 12px; }
  .header h1 { font-size: 26px; margin: 0; letter-spacing: 1px; }
  .status { font-size: 13px; text-transform: uppercase; color: #52606d; }
  .meta { margin-top: 16px; display: flex; justify-content: space-between; }
  .meta .block { font-size: 13px; line-height: 1.5; }
  .meta .label { color: #7b8794; text-transform: uppercase; font-size: 10px; }
  table { width: 100%; border-collapse: collapse; margin-top: 24px; font-size: 13px; }
  th { text-align: left; color: #7b8794; text-transform: uppercase; font-size: 10px; border-bottom: 1px solid #cbd2d9; padding: 6px 4px; }
  th.num, td.num { text-align: right; }
  td { padding: 8px 4px; border-bottom: 1px solid #e4e7eb; }
  .totals { margin-top: 16px; margin-left: auto; width: 260px; font-size: 13px; }
  .totals .row { display: flex; justify-content: space-between; padding: 4px 0; }
  .totals .grand { border-top: 2px solid #1f2933; font-weight: bold; font-size: 15px; padding-top: 8px; }
  .notes { margin-top: 32px; font-size: 12px; color: #52606d; white-space: pre-wrap; }
</style>
</head>
<body>
  <div class="header">
    <h1>Invoice {{.Number}}</h1>
    <span class="status">{{.Status}}</span>
  </div>

  <div class="meta">
    <div class="block">
      <div class="label">Billed to</div>
      <div>{{.Client.Name}}</div>
      {{if .Client.Company}}<div>{{.Client.Company}}</div>{{end}}
      {{if .Client.Address}}<div>{{.Client.Address}}</div>{{end}}
      {{if .Client.Email}}<div>{{.Client.Email}}</div>{{end}}
      {{if .Client.TaxNumber}}<div>Tax no. {{.Client.TaxNumber}}</div>{{end}}
    </div>
    <div class="block">
      <div class="label">Issued</div>
      <div>{{.IssueDate}}</div>
      <div class="label" style="margin-top:8px">Due</div>
      <div>{{.DueDate}}</div>
    </div>
  </div>

  <table>
    <thead>
      <tr><th>Description</th><th class="num">Qty</th><th class="num">Unit price</th><th class="num">Amount</th></tr>
    </thead>
    <tbody>
      {{range .Items}}
      <tr>
        <td>{{.Description}}</td>
        <td class="num">{{.Quantity}}</td>
        <td class="num">{{.UnitPrice}}</td>
        <td class="num">{{.LineTotal}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>

  <div class="totals">
    <div class="row"><span>Subtotal</span><span>{{.Subtotal}}</span></div>
    <div class="row"><span>VAT ({{.VATRate}})</span><span>{{.VATAmount}}</span></div>
    <div class="row grand"><span>Total</span><span>{{.Total}}</span></div>
  </div>

  {{if .Notes}}<div class="notes">{{.Notes}}</div>{{end}}
  {{if .CancelNote}}<div class="notes">Cancelled: {{.CancelNote}}</div>{{end}}
</body>
</html>`
